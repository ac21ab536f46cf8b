package main

import (
	"fmt"
	"io"
	"time"

	"github.com/cuemby/vesinspect/pkg/config"
	"github.com/cuemby/vesinspect/pkg/security"
	"github.com/spf13/cobra"
)

var credsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Show which client credentials would be used",
	Long: `Resolve the client credentials the same way "site get" does and print
where they came from along with the certificate details.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		f, err := parseFormat(output)
		if err != nil {
			return err
		}

		params, err := loadParams("", "")
		if err != nil {
			return err
		}

		creds, err := security.ResolveCredentials(params, config.OSEnv)
		if err != nil {
			return err
		}
		return printCreds(cmd.OutOrStdout(), cmd.ErrOrStderr(), f, creds)
	},
}

func init() {
	credsCmd.Flags().StringP("output", "o", "yaml", "output format (json, yaml, dump)")
}

func printCreds(out, errOut io.Writer, f format, creds *security.Credentials) error {
	info := map[string]any{
		"source": string(creds.Source),
		"path":   creds.Path,
	}
	leaf := creds.Certificate.Leaf
	if leaf != nil {
		info["certificate"] = security.GetCertInfo(leaf)
		info["expires_in"] = security.GetCertTimeRemaining(leaf).Truncate(time.Second).String()
		if security.CertNeedsRotation(leaf) {
			fmt.Fprintf(errOut, "Warning: client certificate expires %s\n", leaf.NotAfter.Format(time.RFC3339))
		}
	}

	if f == formatDump {
		dumper.Fdump(out, info)
		return nil
	}
	return encode(out, f, info)
}

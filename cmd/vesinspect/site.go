package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cuemby/vesinspect/pkg/client"
	"github.com/cuemby/vesinspect/pkg/config"
	"github.com/cuemby/vesinspect/pkg/resource"
	"github.com/spf13/cobra"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Inspect sites",
}

var siteGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Fetch a site and print it",
	Long: `Fetch a site and print its metadata, system metadata and spec.

With --path only the value at that dotted path is printed, for example
--path spec.coordinates.latitude or --path metadata.labels.env.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		namespace, _ := cmd.Flags().GetString("namespace")
		output, _ := cmd.Flags().GetString("output")
		path, _ := cmd.Flags().GetString("path")

		format, err := parseFormat(output)
		if err != nil {
			return err
		}

		site, err := fetchSite(cmd.Context(), args[0], namespace)
		if err != nil {
			return err
		}
		if !site.Exists() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s does not exist\n", site)
			return errSilent
		}

		if path != "" {
			value := site.Get(path)
			if value == nil {
				return fmt.Errorf("%s has no value at %q", site, path)
			}
			return renderValue(cmd.OutOrStdout(), format, value)
		}
		return renderSite(cmd.OutOrStdout(), format, site)
	},
}

var siteExistsCmd = &cobra.Command{
	Use:   "exists NAME",
	Short: "Exit 0 when the site exists, 1 otherwise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		namespace, _ := cmd.Flags().GetString("namespace")
		quiet, _ := cmd.Flags().GetBool("quiet")

		site, err := fetchSite(cmd.Context(), args[0], namespace)
		if err != nil {
			return err
		}
		return reportExists(cmd.OutOrStdout(), site, quiet)
	},
}

func init() {
	siteCmd.AddCommand(siteGetCmd)
	siteCmd.AddCommand(siteExistsCmd)

	siteCmd.PersistentFlags().StringP("namespace", "n", "", fmt.Sprintf("namespace (default %q)", config.DefaultNamespace))

	siteGetCmd.Flags().StringP("output", "o", "yaml", "output format (json, yaml, dump)")
	siteGetCmd.Flags().String("path", "", "print only the value at this dotted path")

	siteExistsCmd.Flags().BoolP("quiet", "q", false, "do not print anything")
}

func fetchSite(parent context.Context, name, namespace string) (*resource.Site, error) {
	params, err := loadParams(name, namespace)
	if err != nil {
		return nil, err
	}

	c, err := client.NewFromParams(params, config.OSEnv)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return resource.GetSite(ctx, c, params.NamespaceOrDefault(), name)
}

func reportExists(w io.Writer, site *resource.Site, quiet bool) error {
	if site.Exists() {
		if !quiet {
			fmt.Fprintf(w, "%s exists\n", site)
		}
		return nil
	}
	if !quiet {
		fmt.Fprintf(w, "%s does not exist\n", site)
	}
	return errSilent
}

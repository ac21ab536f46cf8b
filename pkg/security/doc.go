/*
Package security resolves the client certificate used for mutual TLS with
the VES API.

# Resolution Order

ResolveCredentials tries two sources, in order, and never mixes them:

 1. A PKCS#12 bundle. The path comes from Params.P12File or
    VOLT_API_P12_FILE; the passphrase only from VES_P12_PASSWORD. Both must
    be set. A bundle that is set but cannot be read or decoded is an error.
 2. PEM files: Params.CertFile or VOLT_API_CERT, and Params.KeyFile or
    VOLT_API_KEY. PKCS#1, PKCS#8 and EC keys are accepted.

When neither source is configured the error wraps types.ErrConfiguration
and reads "unable to resolve client credentials".

The returned Credentials always has Certificate.Leaf populated, so callers
can inspect the certificate without parsing it again:

	creds, err := security.ResolveCredentials(params, config.OSEnv)
	if err != nil {
		return err
	}
	if security.CertNeedsRotation(creds.Certificate.Leaf) {
		log.Logger.Warn().Time("not_after", creds.Certificate.Leaf.NotAfter).
			Msg("Client certificate expires soon")
	}

# Server Verification

LoadCAPool appends an extra PEM bundle (Params.CAFile or VOLT_API_CA) to the
system roots. Without one, the system roots are used as is.
*/
package security

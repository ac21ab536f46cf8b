/*
Package resource maps VES API objects into typed resources.

Only sites are supported for now. GetSite fetches
/config/namespaces/{namespace}/sites/{name} through any Fetcher (normally
a *client.Client) and maps the response with SiteClassification:

	c, err := client.NewFromParams(params, config.OSEnv)
	if err != nil {
		return err
	}
	site, err := resource.GetSite(ctx, c, "system", "ce-paris-1")
	if err != nil {
		return err
	}
	if !site.Exists() {
		fmt.Println(site, "not found")
	}
	fmt.Println(site.SiteState(), site.Get("coordinates.latitude"))

A site that does not exist is not an error: Exists reports false and every
accessor returns its zero value.
*/
package resource

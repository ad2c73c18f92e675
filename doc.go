// Package santricity is a client for the NetApp E-Series SANtricity REST
// management API.
//
// A Client is constructed from a ClientConfig and an auth strategy, resolves
// a capability profile for the array's firmware release, and exposes one
// facade per resource family (Volumes, Pools, Hosts, Mappings, Clones,
// Snapshots, Interfaces, System). Relative request paths are automatically
// scoped to the target storage system; the system identifier is discovered
// lazily when not configured.
//
//	client, err := santricity.NewClient(&santricity.ClientConfig{
//		BaseURL: "https://array.example.com/devmgr/v2",
//		Auth:    core.NewBasicAuth("admin", "secret"),
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	volumes, err := client.Volumes.List(ctx)
//
// Entities are loosely typed Records because field names vary across
// firmware releases. Errors are typed; see the core package for the
// taxonomy and errors.As helpers.
package santricity

// Package crm provides the types and helpers for talking to the remote CRM
// vendor's HTTP API.
//
// # Overview
//
// The crm package defines the request/response pipeline contract: Query
// (what to call), Response and Record (what came back, normalized), the
// response normalizer, the windowed paginator, the static resource catalog,
// the credential holder and the error taxonomy. A concrete execution engine
// implementing the Client interface is provided by the crmclient package,
// which wires configuration, transport and credential handling. Most
// consumers should import crmclient to construct a client and then use the
// resource clients exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/centerline-io/crmapi/pkg/crm"
//	  "github.com/centerline-io/crmapi/pkg/crmclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := crmclient.New(&crm.Config{
//	    Endpoint:   "https://crm.example.com/api",
//	    Credential: "token-from-vendor-console",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  lead, err := cli.Leads().FindByID(ctx, "123")
//	  if err != nil { log.Fatal(err) }
//	  _ = lead
//	}
//
// # Queries and pagination
//
// Build a Query with fluent setters, or let a resource client pre-fill the
// resource and operation names. Marking a query paginated routes it through
// FetchAllWindows, which walks the vendor's index windows sequentially and
// aggregates every page into one Response. A paginated run is all-or-nothing:
// any page failure aborts the run and no partial aggregate is returned.
//
// # Response normalization
//
// The vendor reports errors inside the payload (under any transport status),
// signals "no matching records" with a distinct marker, and nests success
// records at an operation-dependent path in two structural shapes (a single
// flat mapping, or a list of mappings). Normalize resolves all of that once
// into Records; every downstream consumer sees one shape.
//
// # Credential handling
//
// The credential lives in a CredentialHolder, never inside a Query, and is
// merged into the request parameters only at dispatch — always as the last
// parameter, so transport errors can be scrubbed by exact substring match.
package crm

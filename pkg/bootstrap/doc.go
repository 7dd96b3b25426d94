// Package bootstrap wires configuration into the process-wide services used
// by the dev CLI:
//   - Logger setup with optional file rotation
//   - OpenTelemetry tracing
//   - Redis and Kafka clients for shipping failure reports
//   - The failure Reporter assembled from the configured sinks
//
// Example usage:
//
//	func main() {
//	    cfg, err := config.Load()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    rt, err := bootstrap.Init(ctx, cfg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer rt.Close(ctx)
//
//	    h, _ := optional.NewFromConfig(cfg.Optional, rt.Reporter)
//	    h.TryImport(ctx, "gopkg.in/yaml.v3")
//	}
package bootstrap

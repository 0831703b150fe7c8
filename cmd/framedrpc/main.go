// Command framedrpc is the framed-rpc command line client.
//
// It bundles a demonstration driver (demo), an ad-hoc conformance check
// (check), a latency/throughput benchmark (bench), and a local demo server
// (serve). All of them are thin orchestration over the client engine's
// public operations.
package main

func main() {
	Execute()
}

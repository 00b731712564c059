// Boxbox is the race-control incident evaluation engine.
//
// It evaluates race incidents against discipline profiles and produces
// caution, penalty, and review recommendations for human stewards.
//
// Usage:
//
//	# Evaluate one incident against a profile
//	boxbox evaluate --incident incident.json --profile oval.yaml
//
//	# Replay a session's incident stream
//	boxbox replay --incidents session.jsonl --profiles profiles/
//
//	# Validate profile files
//	boxbox profiles validate --dir profiles/
//
//	# Prune the incident archive
//	boxbox archive prune
//
//	# Show version information
//	boxbox version
package main

func main() {
	Execute()
}

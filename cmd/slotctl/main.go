// Command slotctl replays allocator trace scripts and runs churn workloads
// against the slotmap allocator.
package main

func main() {
	execute()
}

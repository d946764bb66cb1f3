// Command netslab inspects gate-level netlists and manages design snapshots.
package main

func main() {
	execute()
}

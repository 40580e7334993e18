// Command fifa-stats exports per-season football player statistics scraped
// from sofifa.com. See "fifa-stats --help" for the available commands.
package main

import "github.com/pfrederiksen/fifa-stats/internal/cli"

func main() {
	cli.Execute()
}

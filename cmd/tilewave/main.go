// Command tilewave generates tile maps from a small example map.
//
// Usage:
//
//	tilewave generate maps/cave.txt --width 64 --height 32 --seed 7
//	tilewave generate --config run.yaml --count 8 --parallel 4 -o out/map.txt
//	tilewave generate maps/cave.txt --watch
//	tilewave inspect maps/cave.txt --walkable .
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// Command packfetch downloads a content pack directory from a git
// repository so it can be passed to worldsim via -content-pack.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	get "github.com/hashicorp/go-getter"
)

func main() {
	var (
		base = flag.String("base", "https://github.com/dan-garden/2dcraft-packs.git", "base repository url")
		pack = flag.String("pack", "default", "pack directory inside the repository")
		ver  = flag.String("version", "main", "git ref to fetch")
		out  = flag.String("o", "./packs", "output dir path")
	)
	flag.Parse()

	if *out == "" {
		panic("output dir path required")
	}

	if *pack == "" {
		panic("pack name required")
	}

	path := fmt.Sprintf("%s/%s-%s", *out, *pack, *ver)

	if err := os.RemoveAll(path); err != nil {
		panic(err)
	}

	log.Default().Printf("start downloading pack %s", path)

	url := fmt.Sprintf("git::%s//packs/%s?ref=%s", *base, *pack, *ver)

	if err := get.Get(path, url); err != nil {
		panic(err)
	}

	log.Default().Printf("done downloading pack %s", path)
}

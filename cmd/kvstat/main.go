// Copyright (c) 2019 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// kvstat builds a chainmap.Table[string,string] from a YAML
// tableconfig.Config profile, loads "key=value" (or bare "key") pairs
// from stdin, and prints the table's final entry count to stdout. The
// bucket count is not printed; resize transitions are logged through glog.
//
// Usage:
//
//	kvstat -config profile.yaml < pairs.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/aristanetworks/chainkv/chainmap"
	agglog "github.com/aristanetworks/chainkv/glog"
	"github.com/aristanetworks/chainkv/logger"
	"github.com/aristanetworks/chainkv/tableconfig"
)

var configPath = flag.String("config", "", "path to a tableconfig YAML profile (optional)")

func main() {
	flag.Parse()
	if err := run(*configPath, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, in *os.File, out *os.File) error {
	cfg := tableconfig.Config{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("kvstat: %w", err)
		}
		cfg, err = tableconfig.Parse(data)
		if err != nil {
			return err
		}
	}

	var log logger.Logger = &agglog.Glog{}
	tbl, err := tableconfig.NewStringTable[string](cfg, chainmap.WithLogger[string, string](log))
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		key, value := splitPair(line)
		tbl.Reinsert(key, value, nil, nil)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("kvstat: reading input: %w", err)
	}

	fmt.Fprintf(out, "entries=%d\n", tbl.Len())
	return nil
}

func splitPair(line string) (key, value string) {
	for i := 0; i < len(line); i++ {
		if line[i] == '=' {
			return line[:i], line[i+1:]
		}
	}
	return line, ""
}

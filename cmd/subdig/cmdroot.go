// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/siemens/subdig/dig"
	"github.com/siemens/subdig/resolver"

	"github.com/spf13/cobra"
	"github.com/thediveo/lxkns/log"
)

var (
	domain          *string
	wordlistPath    *string
	threads         *uint
	queryTimeout    *time.Duration
	probeTimeout    *time.Duration
	rateLimit       *uint
	wildcardProbes  *uint
	pingAddrs       *bool
	unprivileged    *bool
	pingWorkers     *uint
	netnsPath       *string
	containerName   *string
	plain           *bool
	indentation     *uint
	spinnerInterval *time.Duration
	debug           *bool
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:     "subdig -d domain -w wordlist [flags]",
		Short:   "subdig brute-forces the subdomains of a domain, skipping wildcard aliases and flagging CDNs",
		Version: "0.9",
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if *domain == "" {
				return fmt.Errorf("missing --domain")
			}
			if *wordlistPath == "" {
				return fmt.Errorf("missing --wordlist")
			}
			if *threads < 1 || *threads > 10000 {
				return fmt.Errorf("--threads out of range [1..10000]")
			}
			if *queryTimeout <= 0 {
				return fmt.Errorf("--timeout must be positive")
			}
			if *probeTimeout <= 0 {
				return fmt.Errorf("--probe-timeout must be positive")
			}
			if *wildcardProbes > 100 {
				return fmt.Errorf("--wildcard-probes out of range [0..100]")
			}
			if *pingWorkers < 1 || *pingWorkers > 10 {
				return fmt.Errorf("--ping-workers out of range [1..10]")
			}
			if *netnsPath != "" && *containerName != "" {
				return fmt.Errorf("--netns and --container are mutually exclusive")
			}
			if *indentation > 80 {
				return fmt.Errorf("--indent width out of range [0..80]")
			}
			if *spinnerInterval < 10*time.Millisecond {
				return fmt.Errorf("--spinner must be at least 10ms")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if *debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logging enabled")
			}
			return ScanAndReport(context.Background(), cmd.OutOrStdout(), scanSettings{
				Domain:         *domain,
				Wordlist:       *wordlistPath,
				Threads:        int(*threads),
				QueryTimeout:   *queryTimeout,
				ProbeTimeout:   *probeTimeout,
				Rate:           int(*rateLimit),
				WildcardProbes: int(*wildcardProbes),
				Ping:           *pingAddrs,
				Unprivileged:   *unprivileged,
				PingWorkers:    int(*pingWorkers),
				Netns:          *netnsPath,
				Container:      *containerName,
				Plain:          *plain,
			})
		},
	}
	// Sets up the flags.
	flags := rootCmd.PersistentFlags()
	domain = flags.StringP(
		"domain", "d", "", "target domain to scan")
	wordlistPath = flags.StringP(
		"wordlist", "w", "", "file with one subdomain label per line")
	threads = flags.UintP(
		"threads", "t", dig.DefaultConcurrency, "maximum number of DNS lookups in flight")
	queryTimeout = flags.Duration(
		"timeout", resolver.DefaultQueryTimeout, "DNS query timeout")
	probeTimeout = flags.Duration(
		"probe-timeout", resolver.DefaultProbeTimeout, "resolver probe timeout and latency threshold")
	rateLimit = flags.Uint(
		"rate", 0, "maximum DNS lookups started per second; 0 is unlimited")
	wildcardProbes = flags.Uint(
		"wildcard-probes", 0, "additional random names probed for wildcard addresses")
	pingAddrs = flags.Bool(
		"ping", false, "verify the addresses found by pinging them")
	unprivileged = flags.Bool(
		"unprivileged", false, "use UDP instead of ICMP pings")
	pingWorkers = flags.Uint(
		"ping-workers", 5, "number of ping workers")
	netnsPath = flags.String(
		"netns", "", "network namespace path to scan from, such as /proc/42/ns/net")
	containerName = flags.String(
		"container", "", "name or ID of Docker container to scan from")
	plain = flags.Bool(
		"plain", false, "print findings line by line instead of a live display")
	indentation = flags.Uint(
		"indent", 3, "indentation width")
	spinnerInterval = flags.Duration(
		"spinner", 100*time.Millisecond, "spinner interval")
	debug = flags.Bool(
		"debug", false, "enable debugging output")
	return
}

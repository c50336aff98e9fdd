// Package cli implements the htop command-line interface.
//
// The root command runs the monitor; flags override values from the config
// file and environment:
//
//	htop                 - Run the monitor
//	htop config          - Print the effective configuration as YAML
//	htop version         - Print version information
//	htop completion SH   - Generate a shell completion script
//
// # Flag Handling
//
// The override flags (--config, --interval, --sample-timeout, --detailed,
// --sort, --plain, --log-file) are persistent, so `htop config` reports
// the same configuration the monitor would run with. Only flags that were
// set on the command line replace config values.
//
// # Exit Codes
//
// Execute returns 0 on a clean quit or interrupt, 2 for usage and config
// errors, and 1 for anything else, including an output that can no longer
// be written.
package cli

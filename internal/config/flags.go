package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/pwrecover/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   archive directory
//	-n string   computer-name pattern
//	-u string   user-name pattern
//	-A          show all matching archives, not just the latest
//	-P          latest-per-user selection instead of one global latest
//	-k string   directory of PEM certificates/keys
//	-j string   Java keystore path
//	-jp string  Java keystore password (omit to be prompted)
//	-H string   recovery-history sqlite path ("" disables history)
//
// Note: the function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-n", "-u", "-A", "-P", "-k", "-j", "-jp", "-H"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ArchiveDir, "d", cfg.ArchiveDir, "archive directory")
	fs.StringVar(&cfg.ComputerPattern, "n", cfg.ComputerPattern, "computer name pattern")
	fs.StringVar(&cfg.UserPattern, "u", cfg.UserPattern, "user name pattern")
	fs.BoolVar(&cfg.ShowAll, "A", cfg.ShowAll, "show all matching archives")
	fs.BoolVar(&cfg.LatestPerUser, "P", cfg.LatestPerUser, "latest per user instead of one global latest")
	fs.StringVar(&cfg.KeyDir, "k", cfg.KeyDir, "directory with PEM certificates and private keys")
	fs.StringVar(&cfg.KeystorePath, "j", cfg.KeystorePath, "Java keystore path")
	fs.StringVar(&cfg.KeystorePassword, "jp", cfg.KeystorePassword, "Java keystore password")
	fs.StringVar(&cfg.HistoryPath, "H", cfg.HistoryPath, "recovery history database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

package util

import (
	"fmt"
	"strings"

	"github.com/cornichon-db/cornichon/lib/db"
	"github.com/cornichon-db/cornichon/lib/serializer"
	"github.com/cornichon-db/cornichon/lib/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupStoreFlags adds the common database flags to a command
func SetupStoreFlags(cmd *cobra.Command) {
	key := "db"
	cmd.PersistentFlags().String(key, "cornichon.db", WrapString("Path of the database file"))

	key = "serializer"
	cmd.PersistentFlags().String(key, "json", WrapString("Serialization method to use (json, bin, yaml, cbor)"))

	key = "policy"
	cmd.PersistentFlags().String(key, "auto", WrapString("Dump policy to use (auto, request, none)"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("cornichon")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetDBPath retrieves the configured database file path
func GetDBPath() string {
	return viper.GetString("db")
}

// GetSerializerMethod reads the serialization method from viper
func GetSerializerMethod() (serializer.Method, error) {
	return serializer.ParseMethod(viper.GetString("serializer"))
}

// GetDumpPolicy reads the dump policy from viper
func GetDumpPolicy() (db.DumpPolicy, error) {
	return db.ParseDumpPolicy(viper.GetString("policy"))
}

// OpenStore opens the configured database file. A missing file is not an
// error: an empty store bound to the path is returned instead, so the first
// dump creates the file.
func OpenStore() (*store.Store, error) {
	method, err := GetSerializerMethod()
	if err != nil {
		return nil, err
	}

	policy, err := GetDumpPolicy()
	if err != nil {
		return nil, err
	}

	path := GetDBPath()

	s, err := store.Load(path, policy, method)
	if err != nil {
		if db.HasCode(err, db.RetCFileNotFound) {
			return store.New(path, policy, method)
		}
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return s, nil
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

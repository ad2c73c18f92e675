package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	santricity "github.com/eseries-community/go-santricity"
	"github.com/eseries-community/go-santricity/core"
)

var rootCmd = &cobra.Command{
	Use:   "santricity",
	Short: "SANtricity storage array CLI",
	Long: `A command-line interface for NetApp E-Series SANtricity arrays.

Connection settings may be supplied as flags or through SANTRICITY_*
environment variables (SANTRICITY_BASE_URL, SANTRICITY_USERNAME,
SANTRICITY_PASSWORD, SANTRICITY_TOKEN, SANTRICITY_VERIFY_SSL,
SANTRICITY_CA_CERT, SANTRICITY_RELEASE, SANTRICITY_SYSTEM_ID).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("base-url", "", "API endpoint, e.g. https://array.example.com/devmgr/v2")
	flags.String("username", "", "username for basic authentication")
	flags.String("password", "", "password for basic authentication")
	flags.String("token", "", "bearer token for JWT authentication")
	flags.String("auth", "basic", "authentication mechanism (basic, jwt)")
	flags.Bool("verify-ssl", true, "verify TLS certificates")
	flags.String("ca-cert", "", "path to a PEM bundle with additional trusted roots")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("release", "", "SANtricity release version for capability selection")
	flags.String("system-id", "", "storage-system identifier (discovered when omitted)")
	flags.Bool("json", false, "emit raw JSON instead of tables")

	viper.SetEnvPrefix("SANTRICITY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{
		"base-url", "username", "password", "token", "auth",
		"verify-ssl", "ca-cert", "release", "system-id",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(newHostsCommand())
	rootCmd.AddCommand(newPoolsCommand())
	rootCmd.AddCommand(newVolumesCommand())
	rootCmd.AddCommand(newMappingsCommand())
	rootCmd.AddCommand(newSystemCommand())
}

// Execute runs the CLI. Errors are printed here so main only maps them to
// the exit code.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// buildClient assembles a client from the persistent flags plus any
// SANTRICITY_* environment overrides.
func buildClient(cmd *cobra.Command) (*santricity.Client, error) {
	baseURL := viper.GetString("base-url")
	if baseURL == "" {
		return nil, &core.ValidationError{
			Message: "a base URL is required (--base-url or SANTRICITY_BASE_URL)",
		}
	}

	auth, err := buildAuth()
	if err != nil {
		return nil, err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	return santricity.NewClient(&santricity.ClientConfig{
		BaseURL:        baseURL,
		Auth:           auth,
		SkipVerify:     !viper.GetBool("verify-ssl"),
		CABundle:       viper.GetString("ca-cert"),
		Timeout:        timeout,
		ReleaseVersion: viper.GetString("release"),
		SystemID:       viper.GetString("system-id"),
	})
}

func buildAuth() (core.AuthStrategy, error) {
	mechanism := strings.ToLower(viper.GetString("auth"))
	token := viper.GetString("token")
	if mechanism == "jwt" || (mechanism == "basic" && token != "" && viper.GetString("username") == "") {
		if token == "" {
			return nil, &core.ValidationError{
				Message: "JWT authentication requires a token (--token or SANTRICITY_TOKEN)",
			}
		}
		return core.NewJWTAuth(token), nil
	}
	if mechanism != "basic" {
		return nil, &core.ValidationError{
			Message: fmt.Sprintf("unknown auth mechanism %q (expected basic or jwt)", mechanism),
		}
	}
	username := viper.GetString("username")
	password := viper.GetString("password")
	if username == "" || password == "" {
		return nil, &core.ValidationError{
			Message: "basic authentication requires a username and password",
		}
	}
	return core.NewBasicAuth(username, password), nil
}

func jsonOutput(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// gibibytes renders a byte quantity as GiB with two decimals; non-numeric
// input renders empty.
func gibibytes(value any) string {
	var number float64
	switch typed := value.(type) {
	case float64:
		number = typed
	case int:
		number = float64(typed)
	case int64:
		number = float64(typed)
	case string:
		if _, err := fmt.Sscanf(typed, "%f", &number); err != nil {
			return ""
		}
	default:
		return ""
	}
	return fmt.Sprintf("%.2f", number/(1024*1024*1024))
}

func stringValue(record core.Record, keys ...string) string {
	if value, ok := record.FirstPresent(keys...); ok {
		return fmt.Sprint(value)
	}
	return ""
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/extbuild-labs/extbuild/internal/branding"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Config keys.
const (
	KeyBuildsDir          = "builds_dir"
	KeyAssetsDir          = "assets_dir"
	KeyPagesDir           = "pages_dir"
	KeyIntegrationFrame   = "integration_frame"
	KeyPublishDir         = "publish_dir"
	KeyManifestSpec       = "manifest_spec"
	KeySchema             = "schema"
	KeyZipCommand         = "zip_command"
	KeyPermissionsAllURLs = "permissions_all_urls"
	KeyTargets            = "targets"
	KeyCampaignRules      = "campaign_rules"
)

// legacyEnv maps keys to the unprefixed variables the build has always read.
var legacyEnv = map[string]string{
	KeyPermissionsAllURLs: "EXTENSION_PERMISSIONS_ALL_URLS",
	KeyTargets:            "TARGETS",
	KeyCampaignRules:      "USE_CAMPAIGN_RULES",
}

var defaults = map[string]string{
	KeyBuildsDir:        "build",
	KeyAssetsDir:        "assets",
	KeyPagesDir:         filepath.Join("src", "browser-extension", "pages"),
	KeyIntegrationFrame: filepath.Join("src", "native-integration", "extensionHostFrame.html"),
	KeyPublishDir:       filepath.Join("..", "ui", "assets", "extension"),
	KeyManifestSpec:     filepath.Join("src", "browser-extension", "manifest.spec.json"),
	KeySchema:           filepath.Join("src", "browser-extension", "schema.json"),
	KeyZipCommand:       "zip",
}

// Settings is the resolved build configuration. Relative paths are resolved
// against Root.
type Settings struct {
	Root               string
	BuildsDir          string
	AssetsDir          string
	PagesDir           string
	IntegrationFrame   string
	PublishDir         string
	ManifestSpec       string
	Schema             string
	ZipCommand         string
	PermissionsAllURLs bool
	Targets            string
	CampaignRules      bool
}

// FilePath returns the project config file path (<root>/extbuild.yaml).
func FilePath(root string) string {
	return filepath.Join(root, branding.ConfigName()+"."+fileType)
}

// Load initializes Viper to read from the project config file and environment.
// A missing config file is not an error; a malformed one is.
func Load(root string) error {
	viper.SetConfigFile(FilePath(root))
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
	for key, legacy := range legacyEnv {
		if err := viper.BindEnv(key, branding.EnvVar(key), legacy); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if _, err := os.Stat(FilePath(root)); err != nil {
		return nil
	}
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", FilePath(root), err)
	}
	return nil
}

// Resolve loads configuration for root and returns the resolved settings.
func Resolve(root string) (*Settings, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root %s: %w", root, err)
	}
	if err := Load(abs); err != nil {
		return nil, err
	}

	allURLs, err := boolKey(KeyPermissionsAllURLs)
	if err != nil {
		return nil, err
	}
	campaignRules, err := boolKey(KeyCampaignRules)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Root:               abs,
		BuildsDir:          resolvePath(abs, viper.GetString(KeyBuildsDir)),
		AssetsDir:          resolvePath(abs, viper.GetString(KeyAssetsDir)),
		PagesDir:           resolvePath(abs, viper.GetString(KeyPagesDir)),
		IntegrationFrame:   resolvePath(abs, viper.GetString(KeyIntegrationFrame)),
		PublishDir:         resolvePath(abs, viper.GetString(KeyPublishDir)),
		ManifestSpec:       resolvePath(abs, viper.GetString(KeyManifestSpec)),
		Schema:             resolvePath(abs, viper.GetString(KeySchema)),
		ZipCommand:         viper.GetString(KeyZipCommand),
		PermissionsAllURLs: allURLs,
		Targets:            viper.GetString(KeyTargets),
		CampaignRules:      campaignRules,
	}
	return s, nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the project config file.
func Set(root, key, value string) error {
	viper.Set(key, value)

	configFile := FilePath(root)

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// boolKey reads a boolean key. Unset or empty values are false; anything
// other than a recognised boolean literal is an error.
func boolKey(key string) (bool, error) {
	raw := viper.Get(key)
	if raw == nil {
		return false, nil
	}
	if s, ok := raw.(string); ok && s == "" {
		return false, nil
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %v", key, raw)
	}
	return b, nil
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

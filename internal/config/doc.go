// Package config resolves build settings from the project-level extbuild.yaml
// file and the environment. It binds the legacy unprefixed variables
// (EXTENSION_PERMISSIONS_ALL_URLS, TARGETS, USE_CAMPAIGN_RULES) alongside the
// EXTBUILD_-prefixed ones, and provides functions to read and write keys.
package config

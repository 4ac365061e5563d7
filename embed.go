package lumiere

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// viewer.js, studio.js, lumiere.css
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

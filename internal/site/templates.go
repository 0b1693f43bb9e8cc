package site

import "embed"

// templateFS contains the HTML templates bundled with the binary.
//
//go:embed templates/*
var templateFS embed.FS

// assetFS holds the site stylesheet.
//
//go:embed assets/*
var assetFS embed.FS

package web

import "embed"

// レポート画面（静的ファイル）。データは /api/v1 から取る
//
//go:embed public
var Public embed.FS

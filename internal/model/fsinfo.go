// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the FSInfo struct, which stores file system metadata.
//
// The file path connects a loaded Package back to its physical source on
// disk. Errors can then name the offending file, and the pipeline derives
// every artifact name (`.{name}.gsm`, `{name}.xml`, ...) from it.
package model

import (
	"path/filepath"
	"strings"
)

type FSInfo struct {
	FilePath string
}

func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
	}
}

// BaseName returns the file name without directory and extension.
func (f *FSInfo) BaseName() string {
	if f == nil || f.FilePath == "" {
		return ""
	}
	base := filepath.Base(f.FilePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

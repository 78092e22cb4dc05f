// Package storage handles the on-disk layout of an XDash install:
// the emulator executables, the HDD content catalog, and the launcher
// configuration. Everything lives relative to the XDash executable,
// matching how portable emulator bundles are distributed.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	xeniaDirName   = "Xenia"
	normalExeName  = "xenia_canary.exe"
	netplayExe     = "xenia_canary_netplay.exe"
	hddDirName     = "XDash HDD"
	catalogFile    = "layout.json"
	configFileName = "xdash.config.toml"
)

// Paths holds the resolved locations of everything XDash reads or writes.
type Paths struct {
	BaseDir     string // Directory containing the XDash executable
	XeniaDir    string // Emulator install directory
	NormalExe   string // Standard emulator executable
	NetplayExe  string // Netplay build of the emulator
	HDDDir      string // HDD content root; catalog paths are relative to this
	CatalogPath string // layout.json inside the HDD directory
	ConfigPath  string // xdash.config.toml next to the executable
}

// ResolvePaths locates the install layout relative to the running executable.
func ResolvePaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	return PathsIn(filepath.Dir(exe)), nil
}

// PathsIn builds the install layout rooted at the given base directory.
// Split out from ResolvePaths so tests can point it at a temp dir.
func PathsIn(baseDir string) *Paths {
	return &Paths{
		BaseDir:     baseDir,
		XeniaDir:    filepath.Join(baseDir, xeniaDirName),
		NormalExe:   filepath.Join(baseDir, xeniaDirName, normalExeName),
		NetplayExe:  filepath.Join(baseDir, xeniaDirName, netplayExe),
		HDDDir:      filepath.Join(baseDir, hddDirName),
		CatalogPath: filepath.Join(baseDir, hddDirName, catalogFile),
		ConfigPath:  filepath.Join(baseDir, configFileName),
	}
}

// Exe returns the emulator executable for the requested mode.
func (p *Paths) Exe(netplay bool) string {
	if netplay {
		return p.NetplayExe
	}
	return p.NormalExe
}

// ContentPath resolves a catalog entry's relative path against the HDD root.
func (p *Paths) ContentPath(rel string) string {
	return filepath.Join(p.HDDDir, filepath.FromSlash(rel))
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

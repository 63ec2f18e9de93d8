package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// AppName names the per-user and system settings directories.
const AppName = "uniserve"

// CustomFileNames are looked up in every settings directory, in this order.
var CustomFileNames = []string{"custom.json", "custom.toml"}

// PathResolver locates settings directories and dataset files for the binary
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
	getenv        func(string) string
}

// NewPathResolver determines the executable location and the user config dir
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := newPathResolver(filepath.Dir(execPath), homeDir, os.Getenv)
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

func newPathResolver(execDir, homeDir string, getenv func(string) string) *PathResolver {
	pr := &PathResolver{
		executableDir: execDir,
		homeDir:       homeDir,
		getenv:        getenv,
	}
	pr.configDir = pr.userConfigDir()
	return pr
}

// userConfigDir returns the per-user settings dir for the platform
func (pr *PathResolver) userConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appData := pr.getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(pr.homeDir, "AppData", "Roaming", AppName)
	default:
		if configHome := pr.getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(pr.homeDir, ".config", AppName)
	}
}

// SettingsDirs lists every settings directory in ascending precedence:
// system dirs first, the user dir last. Duplicates are dropped.
func (pr *PathResolver) SettingsDirs() []string {
	// highest precedence first, reversed at the end
	var dirs []string
	if configHome := pr.getenv("XDG_CONFIG_HOME"); configHome != "" {
		dirs = append(dirs, filepath.Join(configHome, AppName))
	}
	dirs = append(dirs, filepath.Join(pr.homeDir, ".config", AppName))
	for _, d := range filepath.SplitList(pr.getenv("XDG_CONFIG_DIRS")) {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, filepath.Join(d, AppName))
		}
	}
	dirs = append(dirs, filepath.Join("/etc", "xdg", AppName))

	seen := NewSeenFilter()
	out := make([]string, 0, len(dirs))
	for i := len(dirs) - 1; i >= 0; i-- {
		clean := filepath.Clean(dirs[i])
		if !seen.ShouldInclude(clean) {
			continue
		}
		out = append(out, clean)
	}
	return out
}

// CustomFiles lists the override files to try, lowest precedence first.
// Files need not exist; the loader skips missing ones.
func (pr *PathResolver) CustomFiles() []string {
	var files []string
	for _, dir := range pr.SettingsDirs() {
		for _, name := range CustomFileNames {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files
}

// ResolveDataFile finds a dataset file. Absolute paths are returned as is;
// relative ones are tried against the executable dir, the working dir, a
// data/ dir next to the executable and the user config dir. When nothing
// exists the executable-relative path is returned for error reporting.
func (pr *PathResolver) ResolveDataFile(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	execRelative := filepath.Join(pr.executableDir, name)
	candidates := []string{execRelative}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, name))
	}
	base := filepath.Base(name)
	candidates = append(candidates,
		filepath.Join(pr.executableDir, "data", base),
		filepath.Join(filepath.Dir(pr.executableDir), "data", base),
		filepath.Join(pr.configDir, base),
	)

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			log.Debugf("Resolved data file %s -> %s", name, path)
			return path
		}
		log.Debugf("Data file candidate not found: %s", path)
	}
	return execRelative
}

// GetConfigPath returns the full path for a config file, falling back to
// other writable locations when the config dir is read-only
func (pr *PathResolver) GetConfigPath(filename string) string {
	if CheckDirStatus(pr.configDir).Writable {
		return filepath.Join(pr.configDir, filename)
	}
	fallbackDirs := []string{
		filepath.Join(pr.homeDir, "."+AppName),
		filepath.Join(os.TempDir(), AppName),
		pr.executableDir,
	}
	for _, dir := range fallbackDirs {
		if CheckDirStatus(dir).Writable {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path
		}
	}
	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}

// GetConfigDir returns the user config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}

// GetRuntimeInfo returns debug information about path resolution
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	info := map[string]string{
		"executable_dir": pr.executableDir,
		"current_dir":    cwd,
		"home_dir":       pr.homeDir,
		"config_dir":     pr.configDir,
		"settings_dirs":  strings.Join(pr.SettingsDirs(), string(filepath.ListSeparator)),
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
	}
	for _, envVar := range []string{"HOME", "XDG_CONFIG_HOME", "XDG_CONFIG_DIRS", "APPDATA"} {
		if value := pr.getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}

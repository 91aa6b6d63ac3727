package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveTool finds the binary to run for a configured tool name.
//
// Explicit paths are returned untouched. Bare names are looked up next to the
// running executable, then in a bin/ directory beside it, and finally on PATH.
// When nothing matches the bare name is returned so exec reports the failure.
func ResolveTool(configured string) string {
	return resolveTool(configured, executableDir())
}

func resolveTool(configured, exeDir string) string {
	name := strings.TrimSpace(configured)
	if name == "" {
		return ""
	}
	if strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	if exeDir != "" {
		for _, candidate := range []string{
			filepath.Join(exeDir, executableName(name)),
			filepath.Join(exeDir, "bin", executableName(name)),
		} {
			if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
				return candidate
			}
		}
	}
	if resolved, err := exec.LookPath(name); err == nil {
		return resolved
	}
	return name
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func executableName(name string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}
	return name
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// Package platform provides OS and package-manager detection for the
// administrative actions.
package platform

import (
	"fmt"
	"os/exec"
	"runtime"
)

// PackageManager holds the argv forms of the package-manager operations the
// actions need. Commands run through sudo because the tool is not expected to
// run as root.
type PackageManager struct {
	// Name is the package-manager binary ("apt-get", "dnf", "yum").
	Name string
	// Update refreshes the package index.
	Update []string
	// Install installs one package named by the appended argument.
	Install []string
	// Query checks whether one package (appended argument) is installed;
	// exit code zero means installed.
	Query []string
}

// DetectOS returns the current operating system identifier.
func DetectOS() string {
	return runtime.GOOS
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// DetectPackageManager returns the first supported package manager found in
// PATH. Debian-family apt-get is preferred, matching the hosts this tool
// targets.
func DetectPackageManager() (PackageManager, error) {
	candidates := []PackageManager{
		{
			Name:    "apt-get",
			Update:  []string{"sudo", "apt-get", "update"},
			Install: []string{"sudo", "apt-get", "install", "-y"},
			Query:   []string{"dpkg", "-l"},
		},
		{
			Name:    "dnf",
			Update:  []string{"sudo", "dnf", "check-update"},
			Install: []string{"sudo", "dnf", "install", "-y"},
			Query:   []string{"rpm", "-q"},
		},
		{
			Name:    "yum",
			Update:  []string{"sudo", "yum", "check-update"},
			Install: []string{"sudo", "yum", "install", "-y"},
			Query:   []string{"rpm", "-q"},
		},
	}
	for _, pm := range candidates {
		if _, err := lookPath(pm.Name); err == nil {
			return pm, nil
		}
	}
	return PackageManager{}, fmt.Errorf("no supported package manager found (apt-get, dnf, yum)")
}

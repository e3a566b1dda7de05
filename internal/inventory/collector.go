// Package inventory collects host facts for asset registration. The
// collector runs a fixed sequence of OS queries through an injectable
// command runner and assembles the results into a single Report that
// is POSTed to the workflow webhook.
package inventory

import (
	"context"
	"log"
	"strings"
	"time"
)

// Disk describes one mounted filesystem.
type Disk struct {
	Filesystem string `json:"filesystem"`
	Size       string `json:"size"`
	Used       string `json:"used"`
	Available  string `json:"available"`
	MountPoint string `json:"mount_point"`
}

// Report is the host inventory payload sent to the register webhook.
type Report struct {
	Hostname    string    `json:"hostname"`
	OS          string    `json:"os"`
	Kernel      string    `json:"kernel"`
	Arch        string    `json:"arch"`
	CPUModel    string    `json:"cpu_model"`
	CPUCount    int       `json:"cpu_count"`
	MemoryTotal string    `json:"memory_total"`
	Disks       []Disk    `json:"disks"`
	Uptime      string    `json:"uptime"`
	IPAddresses []string  `json:"ip_addresses"`
	License     string    `json:"license,omitempty"`
	CollectedAt time.Time `json:"collected_at"`
}

// Collector gathers host facts.
type Collector struct {
	runner Runner

	// LicenseScript is an optional path to a script whose stdout is
	// recorded as the host's license information.
	LicenseScript string
}

// NewCollector creates a collector using the given runner.
func NewCollector(runner Runner) *Collector {
	return &Collector{runner: runner}
}

// Collect runs the inventory queries and assembles a Report.
// Individual query failures degrade to empty fields rather than
// failing the whole collection; each failure is logged.
func (c *Collector) Collect(ctx context.Context) *Report {
	report := &Report{
		Disks:       []Disk{},
		IPAddresses: []string{},
		CollectedAt: time.Now().UTC(),
	}

	report.Hostname = c.query(ctx, "hostname")
	report.Kernel = c.query(ctx, "uname", "-r")
	report.Arch = c.query(ctx, "uname", "-m")
	report.OS = c.osRelease(ctx)
	report.CPUModel, report.CPUCount = c.cpuInfo(ctx)
	report.MemoryTotal = c.memoryTotal(ctx)
	report.Disks = c.disks(ctx)
	report.Uptime = c.query(ctx, "uptime", "-p")

	if out := c.query(ctx, "hostname", "-I"); out != "" {
		report.IPAddresses = strings.Fields(out)
	}

	if c.LicenseScript != "" {
		out, err := c.runner.Run(ctx, c.LicenseScript)
		if err != nil {
			log.Printf("inventory: license script failed: %v", err)
		} else {
			report.License = out
		}
	}

	return report
}

// query runs a command and returns its output, logging failures.
func (c *Collector) query(ctx context.Context, name string, args ...string) string {
	out, err := c.runner.Run(ctx, name, args...)
	if err != nil {
		log.Printf("inventory: %s query failed: %v", name, err)
		return ""
	}
	return out
}

// osRelease extracts PRETTY_NAME from /etc/os-release.
func (c *Collector) osRelease(ctx context.Context) string {
	out := c.query(ctx, "cat", "/etc/os-release")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "PRETTY_NAME=") {
			return strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), `"`)
		}
	}
	return ""
}

// cpuInfo extracts the CPU model name and logical core count from
// /proc/cpuinfo.
func (c *Collector) cpuInfo(ctx context.Context) (string, int) {
	out := c.query(ctx, "cat", "/proc/cpuinfo")
	model := ""
	count := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "model name") {
			count++
			if model == "" {
				if idx := strings.Index(line, ":"); idx >= 0 {
					model = strings.TrimSpace(line[idx+1:])
				}
			}
		}
	}
	return model, count
}

// memoryTotal extracts MemTotal from /proc/meminfo.
func (c *Collector) memoryTotal(ctx context.Context) string {
	out := c.query(ctx, "cat", "/proc/meminfo")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "MemTotal:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "MemTotal:"))
		}
	}
	return ""
}

// disks parses `df -h` output, skipping pseudo filesystems.
func (c *Collector) disks(ctx context.Context) []Disk {
	out := c.query(ctx, "df", "-h", "-x", "tmpfs", "-x", "devtmpfs", "-x", "overlay")
	lines := strings.Split(out, "\n")
	disks := []Disk{}
	for i, line := range lines {
		if i == 0 { // header
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		disks = append(disks, Disk{
			Filesystem: fields[0],
			Size:       fields[1],
			Used:       fields[2],
			Available:  fields[3],
			MountPoint: fields[5],
		})
	}
	return disks
}

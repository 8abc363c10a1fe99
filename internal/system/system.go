package system

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not raise file limit: %v", err)
	}
}

// perWorkerBytes is a conservative working-set estimate per planning worker
// (decoded photo plus downsample scratch).
const perWorkerBytes = 256 << 20

// Workers returns the planning worker count: the requested value when
// positive, otherwise physical cores capped by available memory.
func Workers(requested int) int {
	if requested > 0 {
		return requested
	}

	n := runtime.NumCPU()
	if physical, err := cpu.Counts(false); err == nil && physical > 0 {
		n = physical
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		byMem := int(vm.Available / perWorkerBytes)
		if byMem < 1 {
			byMem = 1
		}
		if byMem < n {
			n = byMem
		}
	}

	if n < 1 {
		n = 1
	}
	return n
}

// FindLatestImageDir returns dir when it contains images, otherwise the most
// recently modified subdirectory that does.
func FindLatestImageDir(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	if containsImages(entries) {
		return dir, nil
	}

	var latest string
	var latestTime time.Time
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		subEntries, err := os.ReadDir(sub)
		if err != nil || !containsImages(subEntries) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = sub
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no images found under %s", dir)
	}
	return latest, nil
}

func containsImages(entries []os.DirEntry) bool {
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			return true
		}
	}
	return false
}

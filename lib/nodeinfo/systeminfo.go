package nodeinfo

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/gravitational/trace"

	"github.com/edgefleet/fleetiam/api/iamv5"
)

const bytesPerKB = 1024

// readCPUInfo parses a /proc/cpuinfo style file into one entry per
// physical package. An unreadable or empty file yields a single
// default entry with the machine architecture from uname.
func readCPUInfo(path string) ([]*iamv5.CPUInfo, error) {
	byPackage := make(map[uint64]*iamv5.CPUInfo)

	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, trace.ConvertSystemError(err)
		}
	} else {
		defer file.Close()

		var (
			current    *iamv5.CPUInfo
			physicalID uint64
		)
		flush := func() {
			if current == nil {
				return
			}
			// Only the first entry per package is kept.
			if _, ok := byPackage[physicalID]; !ok {
				byPackage[physicalID] = current
			}
			current, physicalID = nil, 0
		}

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			key, value, ok := parseKeyValue(scanner.Text())
			if !ok || key == "processor" {
				flush()
			}
			if !ok {
				continue
			}
			if current == nil {
				current = defaultCPUInfo()
			}

			switch key {
			case "physical id":
				if id, err := strconv.ParseUint(value, 10, 64); err == nil {
					physicalID = id
				}
			case "model name":
				current.ModelName = value
			case "cpu cores":
				if n, err := strconv.ParseUint(value, 10, 64); err == nil {
					current.NumCores = n
				}
			case "siblings":
				if n, err := strconv.ParseUint(value, 10, 64); err == nil {
					current.NumThreads = n
				}
			case "cpu family":
				current.ArchFamily = value
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, trace.ConvertSystemError(err)
		}
		flush()
	}

	if len(byPackage) == 0 {
		return []*iamv5.CPUInfo{defaultCPUInfo()}, nil
	}

	ids := make([]uint64, 0, len(byPackage))
	for id := range byPackage {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	cpus := make([]*iamv5.CPUInfo, 0, len(ids))
	for _, id := range ids {
		cpus = append(cpus, byPackage[id])
	}

	return cpus, nil
}

func defaultCPUInfo() *iamv5.CPUInfo {
	return &iamv5.CPUInfo{
		NumCores:   1,
		NumThreads: 1,
		Arch:       machineArch(),
	}
}

func machineArch() string {
	var uts syscall.Utsname
	if err := syscall.Uname(&uts); err != nil {
		return ""
	}

	buf := make([]byte, 0, len(uts.Machine))
	for _, c := range uts.Machine {
		if c == 0 {
			break
		}
		buf = append(buf, byte(c))
	}

	return string(buf)
}

// readMemTotal returns the MemTotal value of a /proc/meminfo style
// file in bytes.
func readMemTotal(path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, trace.ConvertSystemError(err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseKeyValue(scanner.Text())
		if !ok || key != "MemTotal" {
			continue
		}

		kb, _, _ := strings.Cut(value, " ")
		memTotalKB, err := strconv.ParseUint(kb, 10, 64)
		if err != nil {
			return 0, trace.BadParameter("invalid MemTotal value %q in %v", value, path)
		}

		return memTotalKB * bytesPerKB, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, trace.ConvertSystemError(err)
	}

	return 0, trace.NotFound("no MemTotal entry in %v", path)
}

// partitionSize returns the total size of the filesystem mounted at
// path.
func partitionSize(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, trace.ConvertSystemError(err)
	}

	return stat.Blocks * uint64(stat.Bsize), nil
}

func parseKeyValue(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}

	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

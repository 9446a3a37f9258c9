package model

// Status represents the download state of a module package.
// The zero value means the status is not known yet.
type Status string

const (
	StatusNotDownloaded Status = "not_downloaded"
	StatusDownloading   Status = "downloading"
	StatusDownloaded    Status = "downloaded"
	StatusOutdated      Status = "outdated"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsSet returns false for the empty status
func (s Status) IsSet() bool {
	return s != ""
}

// IsValid returns true if s is one of the known statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusNotDownloaded, StatusDownloading, StatusDownloaded, StatusOutdated:
		return true
	default:
		return false
	}
}

package model

// Module describes one course module instance
type Module struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	CourseID int64  `json:"course_id"`
	ModName  string `json:"modname"`
}

// DownloadSize is the estimated size of a module package
type DownloadSize struct {
	Size  int64 `json:"size"`
	Total bool  `json:"total"` // false when the size is only partially known
}

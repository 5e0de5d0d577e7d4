package dto

// PresignedURLRequest payload for upload URL generation.
type PresignedURLRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	Folder   string `json:"folder"`
}

// PresignedURLResponse carries the time-limited upload URL and the public
// URL the object will have after upload.
type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}

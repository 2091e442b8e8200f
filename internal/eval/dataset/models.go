package dataset

import "github.com/lehigh-university-libraries/idcapture/internal/models"

// Sample is one labelled identity-document image
type Sample struct {
	ID        string `json:"id" parquet:"id"`
	ImagePath string `json:"image_path" parquet:"image_path"`
	FullName  string `json:"full_name" parquet:"full_name"`
	IDNumber  string `json:"id_number" parquet:"id_number"`
	IssueDate string `json:"issue_date" parquet:"issue_date"`
	Address   string `json:"address" parquet:"address"`
}

// Expected returns the ground-truth fields for the sample
func (s Sample) Expected() models.ExtractedData {
	return models.ExtractedData{
		FullName:  s.FullName,
		IDNumber:  s.IDNumber,
		IssueDate: s.IssueDate,
		Address:   s.Address,
	}
}

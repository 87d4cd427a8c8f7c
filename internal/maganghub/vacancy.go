package maganghub

import (
	"encoding/json"
	"strings"
)

// Vacancy is one open internship position as served to the frontend.
type Vacancy struct {
	ID             string  `json:"id"`
	Position       string  `json:"position"`
	Company        string  `json:"company"`
	Quota          int     `json:"quota"`
	Applicants     int     `json:"applicants"`
	Description    string  `json:"description"`
	EducationLevel string  `json:"education_level"`
	FieldOfStudy   string  `json:"field_of_study"`
	Odds           float64 `json:"odds"`
	Category       string  `json:"category,omitempty"`
}

// listResponse mirrors the MagangHub response envelope.
type listResponse struct {
	Data []vacancyItem `json:"data"`
	Meta struct {
		Pagination struct {
			LastPage int `json:"last_page"`
			Total    int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

// vacancyItem mirrors a single raw listing. The education and study fields
// arrive either as plain strings or as JSON-encoded arrays of {title} objects.
type vacancyItem struct {
	IDPosisi   flexID `json:"id_posisi"`
	Posisi     string `json:"posisi"`
	Perusahaan struct {
		NamaPerusahaan string `json:"nama_perusahaan"`
	} `json:"perusahaan"`
	JumlahKuota       int    `json:"jumlah_kuota"`
	JumlahTerdaftar   int    `json:"jumlah_terdaftar"`
	Deskripsi         string `json:"deskripsi"`
	JenjangPendidikan string `json:"jenjang_pendidikan"`
	ProgramStudi      string `json:"program_studi"`
}

// flexID accepts both string and numeric identifiers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*f = ""
		return nil
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string { return string(f) }

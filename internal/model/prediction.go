package model

// Prediction is one row of tbl_predict. Tanggal is stored as local civil
// time text ("2006-01-02 15:04:05"), which also sorts chronologically.
type Prediction struct {
	ID           uint   `gorm:"column:id;primaryKey" json:"id"`
	Gambar       string `gorm:"column:gambar;type:varchar(512);not null" json:"gambar"`
	Akurasi      string `gorm:"column:akurasi;size:16;not null" json:"akurasi"`
	Tanggal      string `gorm:"column:tanggal;size:19;not null;index" json:"tanggal"`
	Penyakit     string `gorm:"column:penyakit;size:32;not null" json:"penyakit"`
	Deskripsi    string `gorm:"column:deskripsi;type:text" json:"deskripsi"`
	Penyebab     string `gorm:"column:penyebab;type:text" json:"penyebab"`
	Gejala       string `gorm:"column:gejala;type:text" json:"gejala"`
	FaktorRisiko string `gorm:"column:faktor_risiko;type:text" json:"faktor_risiko"`
	Penanganan   string `gorm:"column:penanganan;type:text" json:"penanganan"`
	Pencegahan   string `gorm:"column:pencegahan;type:text" json:"pencegahan"`
}

func (Prediction) TableName() string {
	return "tbl_predict"
}

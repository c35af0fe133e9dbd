package model

// swagger:model Batch
type Batch struct {
	BaseModel
	Year string `gorm:"size:4;unique;not null" json:"year"`
}

func (Batch) TableName() string {
	return "batches"
}

// Department 属于某一届（Batch），同届内名称唯一
// swagger:model Department
type Department struct {
	BaseModel
	BatchID     uint   `gorm:"index;type:bigint unsigned;uniqueIndex:idx_batch_name" json:"batchId"`
	Batch       *Batch `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
	Name        string `gorm:"size:300;not null;uniqueIndex:idx_batch_name" json:"name"`
	Description string `gorm:"size:500" json:"description"`
}

func (Department) TableName() string {
	return "departments"
}

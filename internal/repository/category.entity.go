package repository

import (
	"github.com/ospteam/marketplace/internal/model"
)

type CategoryEntity struct {
	ID   int64  `db:"id"   gorm:"primaryKey;autoIncrement;column:id"`
	UID  string `db:"uid"  gorm:"column:uid;not null;uniqueIndex"`
	Name string `db:"name" gorm:"column:name;not null"`
}

func (CategoryEntity) TableName() string {
	return "categories"
}

func toCategoryEntity(m *model.Category) *CategoryEntity {
	if m == nil {
		return nil
	}
	return &CategoryEntity{
		UID:  m.UID,
		Name: m.Name,
	}
}

func toCategoryModel(e *CategoryEntity) *model.Category {
	if e == nil {
		return nil
	}
	return &model.Category{
		UID:  e.UID,
		Name: e.Name,
	}
}

func toCategoryModels(entities []*CategoryEntity) []*model.Category {
	if entities == nil {
		return nil
	}
	models := make([]*model.Category, len(entities))
	for i, e := range entities {
		models[i] = toCategoryModel(e)
	}
	return models
}

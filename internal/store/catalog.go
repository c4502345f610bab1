package store

import "github.com/sweetlavka/storefront/internal/model"

// Ассортимент лавки: карамель и чай.
var defaultCatalog = []model.Product{
	{
		ID:          1,
		Name:        "Фруктовая карамель",
		Price:       350,
		Image:       "/img/77cdccc8-fba0-4550-9a4d-703504dc8f4c.jpg",
		Description: "Ароматная карамель с натуральными фруктовыми вкусами",
		Category:    model.CategoryCandy,
	},
	{
		ID:          2,
		Name:        "Мятная карамель",
		Price:       320,
		Image:       "/img/77cdccc8-fba0-4550-9a4d-703504dc8f4c.jpg",
		Description: "Освежающая карамель с мятой и эвкалиптом",
		Category:    model.CategoryCandy,
	},
	{
		ID:          3,
		Name:        "Медовая карамель",
		Price:       380,
		Image:       "/img/77cdccc8-fba0-4550-9a4d-703504dc8f4c.jpg",
		Description: "Натуральная карамель на основе цветочного меда",
		Category:    model.CategoryCandy,
	},
	{
		ID:          4,
		Name:        "Черный чай Earl Grey",
		Price:       450,
		Image:       "/img/a6ed51aa-09ed-443a-b1ce-44ba775406d2.jpg",
		Description: "Классический английский чай с бергамотом",
		Category:    model.CategoryTea,
	},
	{
		ID:          5,
		Name:        "Зеленый чай Жасмин",
		Price:       520,
		Image:       "/img/a6ed51aa-09ed-443a-b1ce-44ba775406d2.jpg",
		Description: "Нежный зеленый чай с ароматом жасмина",
		Category:    model.CategoryTea,
	},
	{
		ID:          6,
		Name:        "Травяной сбор",
		Price:       380,
		Image:       "/img/a6ed51aa-09ed-443a-b1ce-44ba775406d2.jpg",
		Description: "Целебный сбор из горных трав и ягод",
		Category:    model.CategoryTea,
	},
}

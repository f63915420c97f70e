package main

import "github.com/Pavlo-fo95/ls-resort-backend/internal/domain"

func ptr[T any](v T) *T { return &v }

// defaultCatalog is the service list shown on the public site. Rows are
// keyed by (type, title); editing a price here and re-running the seed
// updates the stored row.
var defaultCatalog = []domain.ServiceItem{
	{Type: domain.ServiceTypeMassage, Title: "Класичний масаж спини", Description: ptr("Розслаблюючий масаж спини та шийно-комірцевої зони"), DurationMin: ptr(40), PriceUAH: ptr(700), SortOrder: 10},
	{Type: domain.ServiceTypeMassage, Title: "Загальний масаж тіла", Description: ptr("Масаж усього тіла для зняття напруги та відновлення"), DurationMin: ptr(90), PriceUAH: ptr(1400), SortOrder: 20},
	{Type: domain.ServiceTypeMassage, Title: "Масаж обличчя", Description: ptr("Лімфодренажний масаж обличчя та шиї"), DurationMin: ptr(30), PriceUAH: ptr(500), SortOrder: 30},
	{Type: domain.ServiceTypeMassage, Title: "Масаж голови", DurationMin: ptr(20), PriceUAH: ptr(350), SortOrder: 40},
	{Type: domain.ServiceTypeTraining, Title: "Корекція постави", Description: ptr("Індивідуальне заняття з вправами для спини"), DurationMin: ptr(60), PriceUAH: ptr(600), SortOrder: 10},
	{Type: domain.ServiceTypeTraining, Title: "Розтяжка та мобільність", DurationMin: ptr(60), PriceUAH: ptr(550), SortOrder: 20},
	{Type: domain.ServiceTypeTraining, Title: "Дихальні практики", Description: ptr("Вправи для зниження стресу та покращення сну"), DurationMin: ptr(45), SortOrder: 30},
	{Type: domain.ServiceTypeHerbs, Title: "Збір для спокійного сну", Description: ptr("Меліса, м'ята, ромашка"), PriceUAH: ptr(180), SortOrder: 10},
	{Type: domain.ServiceTypeHerbs, Title: "Збір для імунітету", Description: ptr("Шипшина, липа, чебрець"), PriceUAH: ptr(180), SortOrder: 20},
	{Type: domain.ServiceTypeHerbs, Title: "Антистрес чай", PriceUAH: ptr(160), SortOrder: 30},
}

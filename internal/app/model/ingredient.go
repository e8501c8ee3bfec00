package model

// MeasurementUnit is one of the predefined catalog units
type MeasurementUnit string

const (
	UnitCan      MeasurementUnit = "банка"
	UnitLoaf     MeasurementUnit = "батон"
	UnitBottle   MeasurementUnit = "бутылка"
	UnitTwig     MeasurementUnit = "веточка"
	UnitGram     MeasurementUnit = "г"
	UnitHandful  MeasurementUnit = "горсть"
	UnitSegment  MeasurementUnit = "долька"
	UnitStar     MeasurementUnit = "звездочка"
	UnitClove    MeasurementUnit = "зубчик"
	UnitDrop     MeasurementUnit = "капля"
	UnitKilogram MeasurementUnit = "кг"
	UnitPiece    MeasurementUnit = "кусок"
	UnitLitre    MeasurementUnit = "л"
	UnitLeaf     MeasurementUnit = "лист"
	UnitMl       MeasurementUnit = "мл"
	UnitBag      MeasurementUnit = "пакет"
	UnitSachet   MeasurementUnit = "пакетик"
	UnitPack     MeasurementUnit = "пачка"
	UnitLayer    MeasurementUnit = "пласт"
	UnitToTaste  MeasurementUnit = "по вкусу"
	UnitBunch    MeasurementUnit = "пучок"
	UnitTbsp     MeasurementUnit = "ст. л."
	UnitGlass    MeasurementUnit = "стакан"
	UnitStem     MeasurementUnit = "стебель"
	UnitPod      MeasurementUnit = "стручок"
	UnitCarcass  MeasurementUnit = "тушка"
	UnitPackage  MeasurementUnit = "упаковка"
	UnitTsp      MeasurementUnit = "ч. л."
	UnitItem     MeasurementUnit = "шт."
	UnitPinch    MeasurementUnit = "щепотка"
)

var measurementUnits = map[MeasurementUnit]struct{}{
	UnitCan: {}, UnitLoaf: {}, UnitBottle: {}, UnitTwig: {}, UnitGram: {},
	UnitHandful: {}, UnitSegment: {}, UnitStar: {}, UnitClove: {}, UnitDrop: {},
	UnitKilogram: {}, UnitPiece: {}, UnitLitre: {}, UnitLeaf: {}, UnitMl: {},
	UnitBag: {}, UnitSachet: {}, UnitPack: {}, UnitLayer: {}, UnitToTaste: {},
	UnitBunch: {}, UnitTbsp: {}, UnitGlass: {}, UnitStem: {}, UnitPod: {},
	UnitCarcass: {}, UnitPackage: {}, UnitTsp: {}, UnitItem: {}, UnitPinch: {},
}

func (u MeasurementUnit) IsValid() bool {
	_, ok := measurementUnits[u]
	return ok
}

// Ingredient is a catalog entry; recipes reference it through IngredientLine
// 재료 카탈로그 (이름 + 단위 조합은 유일)
type Ingredient struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	Name            string          `gorm:"type:varchar(254);not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit MeasurementUnit `gorm:"type:varchar(20);not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

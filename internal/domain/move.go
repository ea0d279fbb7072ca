package domain

// MaterialKind вид упаковочного материала
type MaterialKind string

const (
	MaterialBoxes       MaterialKind = "boxes"
	MaterialTape        MaterialKind = "tape"
	MaterialPlasticBags MaterialKind = "plastic_bags"
)

// MaterialKinds все поддерживаемые материалы в порядке вывода
var MaterialKinds = []MaterialKind{MaterialBoxes, MaterialTape, MaterialPlasticBags}

// Materials количество материалов по видам; отсутствующий вид = 0
type Materials map[MaterialKind]int

// Quantity возвращает количество материала kind
func (m Materials) Quantity(kind MaterialKind) int {
	return m[kind]
}

// MoveRequest параметры переезда, от которых зависит цена
type MoveRequest struct {
	Volume             float64 // m³, > 0
	ParkingDistance    int     // метры от парковки до входа
	StairsFrom         int     // этаж на адресе отправления
	StairsTo           int     // этаж на адресе назначения
	ElevatorFrom       bool
	ElevatorTo         bool
	ElevatorBrokenFrom bool
	ElevatorBrokenTo   bool
	Materials          Materials
}

// PriceBreakdown результат расчета стоимости переезда
// Компоненты округлены до двух знаков, Subtotal и Total до целых крон
type PriceBreakdown struct {
	VolumeCost     float64
	ParkingFee     float64
	StairsFee      float64
	MaterialsCost  float64
	Subtotal       int64
	Total          int64
	EstimatedHours int
	RateVersion    int64
}

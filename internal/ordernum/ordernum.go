package ordernum

import (
	"math/rand"
	"strconv"

	"github.com/theplant/luhn"
)

// New возвращает новый номер заказа: восемь случайных цифр
// и контрольная цифра по алгоритму Луна.
func New() string {
	base := rand.Intn(90000000) + 10000000
	return strconv.Itoa(base*10 + luhn.CalculateLuhn(base))
}

// Valid проверяет контрольную цифру номера.
func Valid(number string) bool {
	n, err := strconv.Atoi(number)
	if err != nil {
		return false
	}
	return luhn.Valid(n)
}

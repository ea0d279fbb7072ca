package booking

import (
	"github.com/m04kA/SMC-MovingService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// FieldCipher шифрование адресов перед записью в БД
type FieldCipher interface {
	Encrypt(plain string) (string, error)
	Decrypt(value string) (string, error)
}

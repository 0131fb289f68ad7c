package services

import "golang.org/x/crypto/bcrypt"

// maxPasswordBytes bcrypt 只接受不超过 72 字节的输入
const maxPasswordBytes = 72

// HashPassword 使用 bcrypt 生成密码哈希
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword 校验密码与哈希是否匹配
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

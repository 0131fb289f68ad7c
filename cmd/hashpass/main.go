package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/signage_dashboard/internal/services"
)

// 用法: hashpass <password>
// 输出的哈希可直接写入 users.password_hash
func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: hashpass <password>")
		os.Exit(2)
	}

	hashed, err := services.HashPassword(os.Args[1])
	if err != nil {
		logrus.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Println(hashed)
}

// Command hashpw 输出管理员密码的 bcrypt 哈希，用于 ADMIN_PASSWORD_HASH。
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"faq-support-go/pkg/hash"
)

func main() {
	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "usage: hashpw <password>  (or pipe the password on stdin)")
			os.Exit(2)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "password must not be empty")
		os.Exit(2)
	}

	h, err := hash.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(h)
}

package main

import "todoapp/internal/app"

// @title           Todo API
// @version         1.0
// @description     Todo backend with OTP-verified authentication.
// @BasePath        /
func main() {
	app.Run()
}

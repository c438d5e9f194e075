package main

import "github.com/ariebrainware/embryo-ai/cmd"

// @title           Embryo AI API
// @version         1.0
// @description     Embryo grading clinic backend.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}

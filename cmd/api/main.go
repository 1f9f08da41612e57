package main

// @title LINE Knowledge Bot APIs
// @version 1.0
// @description LINE document question answering bot: webhook and ingestion log admin API.

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	_ "line-knowledge-bot/docs"
	protocol "line-knowledge-bot/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Fatalln(err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	h, err := NewHandler()
	if err != nil {
		log.Fatalln(err)
	}
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		lambda.Start(h.HandleLambdaEvent)
	} else {
		if len(os.Args) < 2 {
			log.Fatalln("at least one s3 url is required as an argument")
		}
		ctx := context.Background()
		for _, url := range os.Args[1:] {
			arns, err := h.HandleS3URL(ctx, url)
			for _, arn := range arns {
				fmt.Println(arn)
			}
			if err != nil {
				log.Fatalln(err)
			}
		}
	}
}

package main

import (
	"github.com/hxj7031gino/my-cv/cmd"
	"github.com/hxj7031gino/my-cv/internal/model"
)

var site model.SiteData

func main() {
	cmd.Execute(&site)
}

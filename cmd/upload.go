/*
Copyright © 2025 cloudservices
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"

	"github.com/cloudservices/kbot/config"
	"github.com/cloudservices/kbot/storage"
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <files...>",
	Short: "Upload knowledge documents to the knowledge bucket",
	Long: `Uploads one or more text documents into the knowledge bucket so they
become part of the context gathered for every question.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		prefix, _ := cmd.Flags().GetString("prefix")
		if prefix == "" {
			prefix = cfg.KnowledgePrefix
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatalf("Failed to load AWS config: %v", err)
		}
		store := storage.NewS3Store(awsCfg)

		for _, path := range args {
			body, err := os.ReadFile(path)
			if err != nil {
				log.Fatalf("Failed to read %s: %v", path, err)
			}
			if _, err := storage.DecodeText(body); err != nil {
				log.Fatalf("Refusing to upload %s: %v", path, err)
			}
			key := prefix + filepath.Base(path)
			if err := store.Put(ctx, cfg.KnowledgeBucket, key, body); err != nil {
				log.Fatalf("Failed to upload %s: %v", path, err)
			}
			fmt.Println("Uploaded document", key)
		}
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringP("prefix", "p", "", "Key prefix for uploaded documents")
}

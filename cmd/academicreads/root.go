package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	academicreads "github.com/lgngh/AcademicReads"
	"github.com/lgngh/AcademicReads/auth"
	"github.com/lgngh/AcademicReads/bleve"
	"github.com/lgngh/AcademicReads/bolt"
	"github.com/lgngh/AcademicReads/crossref"
	"github.com/lgngh/AcademicReads/jwt"
	"github.com/lgngh/AcademicReads/log"
	"github.com/lgngh/AcademicReads/papers"
)

var (
	// flags
	verbose bool
	env     string

	// logger
	logger log.Logger

	// auth
	signingKey []byte

	// drivers
	boltDriver *bolt.Driver
	paperIndex *bleve.PaperIndex

	// stores
	paperStore  academicreads.PaperStore
	reviewStore academicreads.ReviewStore
	userStore   academicreads.UserStore

	// services
	userService  *auth.UserService
	paperService *papers.Service
	resolver     *crossref.Resolver
)

type Configuration struct {
	Auth struct {
		Key string `toml:"key"`
	} `toml:"auth"`
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Bleve struct {
		Store string `toml:"store"`
	} `toml:"bleve"`
	Web struct {
		Addr string `toml:"addr"`
	} `toml:"web"`
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose mode")
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "")
}

var RootCmd = cobra.Command{
	Use:   "academicreads",
	Short: "Catalog, review and search academic papers",
	Long:  "Catalog, review and search academic papers",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load configuration
		cfgData, err := os.ReadFile(fmt.Sprintf("configuration/config.%s.toml", env))
		if err != nil {
			fmt.Println("error reading configuration:", err)
			os.Exit(1)
		}

		var cfg Configuration
		err = toml.Unmarshal(cfgData, &cfg)
		if err != nil {
			fmt.Println("error unmarshalling configuration:", err)
			os.Exit(1)
		}
		webAddr = cfg.Web.Addr

		// Create logger
		logger = log.New(env)

		// Load signing key
		keyData, err := os.ReadFile(cfg.Auth.Key)
		if err != nil {
			logger.Fatal("could not open key file:", err)
		}
		var key academicreads.SigningKey
		err = json.Unmarshal(keyData, &key)
		if err != nil {
			logger.Fatal("could not read key file:", err)
		}
		signingKey = []byte(key.Key)

		// Create stores
		boltDriver = &bolt.Driver{}
		if err := boltDriver.Open(cfg.Bolt.Store); err != nil {
			logger.Fatal("could not open store:", err)
		}
		paperStore = &bolt.PaperStore{Driver: boltDriver}
		reviewStore = &bolt.ReviewStore{Driver: boltDriver}
		userStore = &bolt.UserStore{Driver: boltDriver}

		// Create index
		paperIndex = &bleve.PaperIndex{}
		if err := paperIndex.Open(cfg.Bleve.Store); err != nil {
			logger.Fatal("could not open index:", err)
		}

		// Create services
		encodeDecoder := jwt.NewEncodeDecoder(signingKey)
		userService = auth.NewUserService(userStore, auth.BcryptHasher{}, encodeDecoder, encodeDecoder)
		paperService = papers.NewService(paperStore, reviewStore, paperIndex)
		resolver = crossref.NewResolver()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if paperIndex != nil {
			paperIndex.Close()
		}
		if boltDriver != nil {
			boltDriver.Close()
		}
	},
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

package cli

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/forgenotes/changelog-gen/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve <owner/repo>",
	Short: "Generate the changelog once and serve it over HTTP",
	Long: `serve generates the changelog like the plain command would, then keeps
it in memory and exposes it over HTTP instead of writing a file:

  GET /ping       health check
  GET /changelog  milestone title and document lines as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		lines, ms, _, _, err := generate(cmd, args[0])
		if err != nil {
			return err
		}

		r := gin.Default()
		r.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})
		r.GET("/changelog", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"milestone": ms.GetTitle(),
				"number":    ms.GetNumber(),
				"lines":     lines,
			})
		})
		logging.Infof("serving changelog on %s", addr)
		return r.Run(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

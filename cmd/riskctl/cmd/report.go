package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Pull a risk report from a running service",
	RunE: func(cmd *cobra.Command, args []string) error {
		riskUser, _ := cmd.Flags().GetString("risk-user")
		rawJSON, _ := cmd.Flags().GetBool("json")

		body, err := apiGet("/api/v1/risk/report", url.Values{"risk_user": {riskUser}})
		if err != nil {
			return err
		}
		if rawJSON {
			return printJSON(body)
		}

		var env struct {
			IsSuccess bool                   `json:"is_success"`
			Message   string                 `json:"message"`
			Data      []models.RiskReportRow `json:"data"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return fmt.Errorf("decode report: %w", err)
		}
		renderReport(os.Stdout, env.Data)
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Risk catalog commands",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries for a risk user type",
	RunE: func(cmd *cobra.Command, args []string) error {
		riskUser, _ := cmd.Flags().GetString("risk-user")
		body, err := apiGet("/api/v1/catalog", url.Values{"risk_user": {riskUser}})
		if err != nil {
			return err
		}
		return printJSON(body)
	},
}

// renderReport prints the report rows as a table, coloring each priority by
// tier.
func renderReport(w io.Writer, rows []models.RiskReportRow) {
	t := &table{headers: []string{"RISK", "RATE", "PRIORITY", "MITIGATION", "FORECAST"}}
	for _, row := range rows {
		priority := cell{text: row.Priority, color: priorityColor(row.Priority)}
		t.addRow(plain(row.RiskName), plain(formatRate(row.RiskRate)), priority,
			plain(formatMitigation(row.MitigationEffectivity)), plain(row.ForecastPrediction))
	}
	t.render(w)
	fmt.Fprintf(w, "\n%d risk(s)\n", len(rows))
}

func formatRate(rate *float64) string {
	if rate == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *rate)
}

func formatMitigation(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return fmt.Sprintf("%v", v)
}

// apiGet issues an authenticated GET against the service and returns the raw
// response body.
func apiGet(path string, query url.Values) ([]byte, error) {
	if authToken == "" {
		return nil, fmt.Errorf("--token is required (mint one with 'riskctl token')")
	}

	u := serverURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+authToken)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service returned %s: %s", resp.Status, string(body))
	}
	return body, nil
}

// printJSON pretty-prints a JSON body to stdout, falling back to the raw
// bytes when it does not parse.
func printJSON(body []byte) error {
	var pretty any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pretty)
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)

	reportCmd.Flags().String("risk-user", "Industry", "risk user type: Industry, Supplier or Retail")
	reportCmd.Flags().Bool("json", false, "print the raw JSON envelope instead of a table")
	catalogListCmd.Flags().String("risk-user", "Industry", "risk user type: Industry, Supplier or Retail")
}

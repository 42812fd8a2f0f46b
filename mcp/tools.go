package mcp

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	locadoc "github.com/owenchateau/locadoc"
	"github.com/owenchateau/locadoc/calc"
	"github.com/owenchateau/locadoc/documents"
	"github.com/owenchateau/locadoc/format"
)

// RegisterDefaultTools adds the document generation and calculation tools
// to the server.
func RegisterDefaultTools(s *Server, engine *locadoc.Engine) {
	s.AddTool(listDocumentTypesTool())
	s.AddTool(generateDocumentTool(engine))
	s.AddTool(calculateIndexationTool())
	s.AddTool(buildPaymentPlanTool())
	s.AddTool(reconcileChargesTool())
	s.AddTool(checkSolvencyTool())
}

func listDocumentTypesTool() Tool {
	return Tool{
		Name:        "list_document_types",
		Description: "List the document types the engine can generate, with their reference prefix and title.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		Handler: handleListDocumentTypes,
	}
}

func handleListDocumentTypes(args map[string]interface{}) (ToolResult, error) {
	infos := make([]map[string]interface{}, 0)
	for _, t := range documents.Types() {
		d, _ := documents.Get(t)
		infos = append(infos, map[string]interface{}{
			"type":   string(d.Type),
			"prefix": d.Prefix,
			"title":  d.Title,
		})
	}
	jsonBytes, _ := json.MarshalIndent(infos, "", "  ")
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: string(jsonBytes)}},
	}, nil
}

func generateDocumentTool(engine *locadoc.Engine) Tool {
	return Tool{
		Name:        "generate_document",
		Description: "Generate a rental legal document as PDF from a JSON payload. Returns the PDF as base64 unless an output path is given.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Document type, e.g. receipt, formal_notice, lease_contract. See list_document_types.",
				},
				"payload": map[string]interface{}{
					"type":        "object",
					"description": "Document payload: parties, property, amounts, dates.",
				},
				"outputPath": map[string]interface{}{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
			"required": []string{"type", "payload"},
		},
		Handler: handleGenerateDocument(engine),
	}
}

func handleGenerateDocument(engine *locadoc.Engine) ToolHandler {
	return func(args map[string]interface{}) (ToolResult, error) {
		typ, ok := args["type"].(string)
		if !ok {
			return ToolResult{}, fmt.Errorf("missing 'type' argument")
		}
		payloadData, ok := args["payload"]
		if !ok {
			return ToolResult{}, fmt.Errorf("missing 'payload' argument")
		}
		payload, err := json.Marshal(payloadData)
		if err != nil {
			return ToolResult{}, fmt.Errorf("encoding payload: %w", err)
		}

		art, err := engine.Generate(documents.Type(typ), payload)
		if err != nil {
			return ToolResult{}, fmt.Errorf("generating document: %w", err)
		}

		if outputPath, ok := args["outputPath"].(string); ok && outputPath != "" {
			if err := os.WriteFile(outputPath, art.Data, 0644); err != nil {
				return ToolResult{}, fmt.Errorf("writing file: %w", err)
			}
			return ToolResult{
				Content: []ContentBlock{{
					Type: "text",
					Text: fmt.Sprintf("Document %s generated: %s (%d bytes)", art.Number, outputPath, len(art.Data)),
				}},
			}, nil
		}

		encoded := base64.StdEncoding.EncodeToString(art.Data)
		return ToolResult{
			Content: []ContentBlock{{
				Type: "text",
				Text: fmt.Sprintf("Document %s (%s, %d bytes). Base64 data:\n%s",
					art.Number, art.Filename, len(art.Data), encoded),
			}},
		}, nil
	}
}

func calculateIndexationTool() Tool {
	return Tool{
		Name:        "calculate_indexation",
		Description: "Compute the revised rent from the old rent and the old and new reference index (IRL) values.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"oldRent":  map[string]interface{}{"type": "number", "description": "Current monthly rent excluding charges"},
				"oldIndex": map[string]interface{}{"type": "number", "description": "Reference index value of the lease"},
				"newIndex": map[string]interface{}{"type": "number", "description": "Latest published index value"},
			},
			"required": []string{"oldRent", "oldIndex", "newIndex"},
		},
		Handler: handleCalculateIndexation,
	}
}

func handleCalculateIndexation(args map[string]interface{}) (ToolResult, error) {
	oldRent, err := floatArg(args, "oldRent")
	if err != nil {
		return ToolResult{}, err
	}
	oldIndex, err := floatArg(args, "oldIndex")
	if err != nil {
		return ToolResult{}, err
	}
	newIndex, err := floatArg(args, "newIndex")
	if err != nil {
		return ToolResult{}, err
	}

	res, err := calc.Indexation(oldRent, oldIndex, newIndex)
	if err != nil {
		return ToolResult{}, err
	}

	out := map[string]interface{}{
		"oldRent":          res.OldRent,
		"newRent":          res.NewRent,
		"oldIndex":         res.OldIndex,
		"newIndex":         res.NewIndex,
		"variationPercent": res.VariationPercent,
		"newRentFormatted": format.Currency(res.NewRent),
	}
	jsonBytes, _ := json.MarshalIndent(out, "", "  ")
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: string(jsonBytes)}},
	}, nil
}

func buildPaymentPlanTool() Tool {
	return Tool{
		Name:        "build_payment_plan",
		Description: "Spread a rental debt over monthly installments. Every installment but the last is the euro-ceiling of the even split; the last absorbs the remainder.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"totalDebt":    map[string]interface{}{"type": "number", "description": "Total debt in euros"},
				"installments": map[string]interface{}{"type": "number", "description": "Number of monthly installments"},
				"startDate":    map[string]interface{}{"type": "string", "description": "First installment date, ISO format (2026-10-01)"},
			},
			"required": []string{"totalDebt", "installments", "startDate"},
		},
		Handler: handleBuildPaymentPlan,
	}
}

func handleBuildPaymentPlan(args map[string]interface{}) (ToolResult, error) {
	totalDebt, err := floatArg(args, "totalDebt")
	if err != nil {
		return ToolResult{}, err
	}
	installments, err := floatArg(args, "installments")
	if err != nil {
		return ToolResult{}, err
	}
	startStr, ok := args["startDate"].(string)
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'startDate' argument")
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return ToolResult{}, fmt.Errorf("parsing startDate: %w", err)
	}

	schedule, err := calc.BuildSchedule(totalDebt, int(installments), start)
	if err != nil {
		return ToolResult{}, err
	}

	jsonBytes, _ := json.MarshalIndent(schedule, "", "  ")
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: string(jsonBytes)}},
	}, nil
}

func reconcileChargesTool() Tool {
	return Tool{
		Name:        "reconcile_charges",
		Description: "Compute the annual charge reconciliation balance. A positive balance is a refund owed to the tenant.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"provisionsPaid": map[string]interface{}{"type": "number", "description": "Charge provisions paid over the year"},
				"actualCharges":  map[string]interface{}{"type": "number", "description": "Actual recoverable charges"},
				"breakdown": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "object"},
					"description": "Optional charge lines with 'label' and 'amount'. When omitted, an estimated split is synthesized.",
				},
			},
			"required": []string{"provisionsPaid", "actualCharges"},
		},
		Handler: handleReconcileCharges,
	}
}

func handleReconcileCharges(args map[string]interface{}) (ToolResult, error) {
	provisions, err := floatArg(args, "provisionsPaid")
	if err != nil {
		return ToolResult{}, err
	}
	actual, err := floatArg(args, "actualCharges")
	if err != nil {
		return ToolResult{}, err
	}

	var breakdown []calc.ChargeLine
	if raw, ok := args["breakdown"].([]interface{}); ok {
		jsonBytes, err := json.Marshal(raw)
		if err != nil {
			return ToolResult{}, fmt.Errorf("encoding breakdown: %w", err)
		}
		if err := json.Unmarshal(jsonBytes, &breakdown); err != nil {
			return ToolResult{}, fmt.Errorf("parsing breakdown: %w", err)
		}
	}

	res := calc.ReconcileCharges(provisions, actual, breakdown)
	out := map[string]interface{}{
		"provisionsPaid":   res.ProvisionsPaid,
		"actualCharges":    res.ActualCharges,
		"balance":          res.Balance,
		"estimated":        res.Estimated,
		"breakdown":        res.Breakdown,
		"balanceFormatted": format.Currency(res.Balance),
	}
	jsonBytes, _ := json.MarshalIndent(out, "", "  ")
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: string(jsonBytes)}},
	}, nil
}

func checkSolvencyTool() Tool {
	return Tool{
		Name:        "check_solvency",
		Description: "Compute a tenant's income-to-rent ratio. Guarantor income is included only when declared.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"salary":          map[string]interface{}{"type": "number", "description": "Monthly net salary"},
				"otherIncome":     map[string]interface{}{"type": "number", "description": "Other monthly income, defaults to 0"},
				"aidAmount":       map[string]interface{}{"type": "number", "description": "Monthly housing aid, defaults to 0"},
				"guarantorIncome": map[string]interface{}{"type": "number", "description": "Guarantor's monthly income; omit when there is no guarantor"},
				"rentAmount":      map[string]interface{}{"type": "number", "description": "Monthly rent including charges"},
			},
			"required": []string{"salary", "rentAmount"},
		},
		Handler: handleCheckSolvency,
	}
}

func handleCheckSolvency(args map[string]interface{}) (ToolResult, error) {
	salary, err := floatArg(args, "salary")
	if err != nil {
		return ToolResult{}, err
	}
	rent, err := floatArg(args, "rentAmount")
	if err != nil {
		return ToolResult{}, err
	}

	income := calc.Income{Salary: salary}
	if v, ok := args["otherIncome"].(float64); ok {
		income.OtherIncome = v
	}
	if v, ok := args["aidAmount"].(float64); ok {
		income.AidAmount = v
	}
	if v, ok := args["guarantorIncome"].(float64); ok {
		income.GuarantorIncome = &v
	}

	total := income.Total()
	out := map[string]interface{}{
		"totalIncome": total,
		"rentAmount":  rent,
		"ratio":       calc.SolvencyRatio(total, rent),
	}
	jsonBytes, _ := json.MarshalIndent(out, "", "  ")
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: string(jsonBytes)}},
	}, nil
}

// floatArg extracts a mandatory numeric argument.
func floatArg(args map[string]interface{}, name string) (float64, error) {
	v, ok := args[name].(float64)
	if !ok {
		return 0, fmt.Errorf("missing '%s' argument", name)
	}
	return v, nil
}

package service

import (
	"encoding/base64"

	"expenseanalyzer/internal/model"
)

// SystemInstruction is the fixed policy sent ahead of every user message.
const SystemInstruction = "You are a financial literacy AI that analyzes receipts and purchases for young users. " +
	"If the uploaded image or text contains any personal, financial, or sensitive information such as Social Security Numbers, " +
	"bank account numbers, credit card numbers, routing numbers, passwords, or home addresses, you must refuse to analyze that portion " +
	"and tell the user to remove it. " +
	"Otherwise, evaluate whether the purchase is financially responsible, consider the user's context, explain reasoning, " +
	"and provide friendly suggestions or cheaper alternatives when needed."

// dataURIPrefix is used for every upload; the real media type is not forwarded.
const dataURIPrefix = "data:application/octet-stream;base64,"

// EncodeDataURI returns data as a base64 data URI.
func EncodeDataURI(data []byte) string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(data)
}

// BuildRequest assembles the prompt for one analysis. userText is passed through unmodified.
func BuildRequest(modelName string, doc model.UploadedDocument, userText string) model.AnalysisRequest {
	return model.AnalysisRequest{
		Model:             modelName,
		SystemInstruction: SystemInstruction,
		UserText:          userText,
		DocumentURI:       EncodeDataURI(doc.Data),
	}
}

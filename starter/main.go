package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	sdklog "go.temporal.io/sdk/log"

	"kyc-verification-workflow/camera"
	"kyc-verification-workflow/config"
	"kyc-verification-workflow/logger"
	"kyc-verification-workflow/shared"
	"kyc-verification-workflow/workflows"
)

func main() {
	cfg := config.FromEnv()

	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHostPort,
		Logger:   sdklog.NewStructuredLogger(logger.New()),
	})
	if err != nil {
		log.Fatalf("Unable to create Temporal client: %v", err)
	}
	defer c.Close()

	sessionID := uuid.NewString()
	// The session id doubles as an idempotency key: one running workflow
	// per verification session.
	workflowID := fmt.Sprintf("kyc-session-%s", sessionID)
	reader := bufio.NewReader(os.Stdin)

	req := shared.VerificationRequest{
		SessionID:            sessionID,
		AllowUnextractedSkip: cfg.AllowUnextractedSkip,
		Policy:               cfg.Policy,
	}

	fmt.Println()
	fmt.Println("🚀 Starting verification session", sessionID)

	we, err := c.ExecuteWorkflow(
		context.Background(),
		client.StartWorkflowOptions{
			ID:        workflowID,
			TaskQueue: shared.VerificationWorkflowTaskQueue,
		},
		workflows.VerificationWorkflow,
		req,
	)
	if err != nil {
		log.Fatalf("Unable to start workflow: %v", err)
	}
	fmt.Printf("   WorkflowID: %s\n", we.GetID())
	fmt.Printf("   RunID:      %s\n", we.GetRunID())

	cam := camera.NewController(stubDevice(cfg.CameraMode))
	defer cam.Stop()

	ui := &cli{client: c, workflowID: workflowID, reader: reader, camera: cam}
	ui.loop()
}

func stubDevice(mode string) camera.Device {
	switch mode {
	case config.CameraModeDenied:
		return &camera.StubDevice{DenyPermission: true}
	case config.CameraModeUnavailable:
		return &camera.StubDevice{Unavailable: true}
	default:
		return &camera.StubDevice{}
	}
}

type cli struct {
	client     client.Client
	workflowID string
	reader     *bufio.Reader
	camera     *camera.Controller
}

func (u *cli) loop() {
	for {
		state, ok := u.queryState()
		if !ok {
			return
		}
		step := shared.StepAt(state.StepIndex)

		fmt.Println()
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		if state.Submitted {
			u.printResult(state)
		} else {
			fmt.Printf("  Step %d/%d: %s\n", state.StepIndex+1, shared.StepCount(), step.Title)
			fmt.Printf("  %s\n", step.Message)
		}
		if state.LastError != nil {
			fmt.Printf("  ⚠️  %s\n", state.LastError.Message)
		}
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Println()
		fmt.Println("  [1] Edit details          [2] Send one-time code")
		fmt.Println("  [3] Enter one-time code   [4] Upload document")
		fmt.Println("  [5] Capture selfie        [6] Continue")
		fmt.Println("  [7] Back                  [8] Submit dossier")
		fmt.Println("  [9] Return to flow        [0] Exit")
		fmt.Println()
		fmt.Print("Choose: ")

		choice := u.readLine()

		// The camera stays live only while the session sits on the
		// selfie step.
		if step.ID != shared.StepSelfieCheck && choice != "5" {
			_ = u.camera.Stop()
		}

		switch choice {
		case "1":
			u.editDetails()
		case "2":
			u.signal(shared.SignalRequestOTP, nil)
		case "3":
			fmt.Print("Code: ")
			u.signal(shared.SignalSubmitOTP, u.readLine())
		case "4":
			u.uploadDocument()
		case "5":
			u.captureSelfie()
		case "6":
			u.signal(shared.SignalAdvance, nil)
		case "7":
			u.signal(shared.SignalRetreat, nil)
		case "8":
			u.signal(shared.SignalSubmit, nil)
		case "9":
			u.signal(shared.SignalReturnToFlow, nil)
		case "0":
			fmt.Println()
			fmt.Println("👋 Exiting. The session keeps running; re-run to reconnect,")
			fmt.Println("   or view it at http://localhost:8233")
			return
		default:
			fmt.Println("❌ Invalid choice.")
		}
	}
}

func (u *cli) editDetails() {
	var fields shared.ApplicantDetails
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Full name", &fields.FullName},
		{"Date of birth (DD/MM/YYYY)", &fields.DateOfBirth},
		{"Country", &fields.Country},
		{"Phone", &fields.Phone},
		{"PAN number", &fields.PANNumber},
		{"Aadhaar number", &fields.AadhaarNumber},
		{"Address", &fields.Address},
	}
	fmt.Println("Leave a field blank to keep its current value.")
	for _, p := range prompts {
		fmt.Printf("%s: ", p.label)
		*p.dst = u.readLine()
	}
	u.signal(shared.SignalUpdateFields, fields)
}

func (u *cli) uploadDocument() {
	fmt.Print("Document kind (PAN/AADHAAR): ")
	kind := shared.DocumentKind(strings.ToUpper(u.readLine()))
	fmt.Print("Path to document file: ")
	path := u.readLine()

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ Could not read %s: %v\n", path, err)
		return
	}
	u.signal(shared.SignalDocumentUploaded, shared.DocumentSubmission{
		Kind:     kind,
		FileName: filepath.Base(path),
		Content:  content,
	})
	fmt.Println("📤 Document sent for extraction...")
}

func (u *cli) captureSelfie() {
	if err := u.camera.RequestStream(context.Background()); err != nil {
		fmt.Printf("❌ Camera error: %v\n", err)
		return
	}
	frame, err := u.camera.CaptureFrame()
	if err != nil {
		fmt.Printf("❌ Capture failed: %v\n", err)
		return
	}
	u.signal(shared.SignalSelfieCaptured, shared.SelfieCapture{ImageDataURL: frame})
	fmt.Println("📸 Selfie captured.")
}

func (u *cli) printResult(state shared.StateSnapshot) {
	entry, err := shared.Classify(state.Status)
	if err != nil {
		fmt.Printf("  Submitted, status pending\n")
		return
	}
	fmt.Printf("  ✅ Dossier submitted: %s [%s]\n", entry.Label, entry.FIUCode)
	fmt.Printf("  %s\n", entry.ModelMeaning)
	if state.Result != nil {
		fmt.Printf("  Overall score: %.2f (match: %v)\n", state.Result.OverallScore, state.Result.OverallMatch)
		for _, fs := range state.Result.FieldScores {
			fmt.Printf("    %-14s %6.2f  %v\n", fs.Field, fs.Score, fs.Match)
		}
	}
}

func (u *cli) queryState() (shared.StateSnapshot, bool) {
	resp, err := u.client.QueryWorkflow(context.Background(), u.workflowID, "", shared.QueryState)
	if err != nil {
		fmt.Printf("❌ Query failed (did the session end?): %v\n", err)
		return shared.StateSnapshot{}, false
	}
	var state shared.StateSnapshot
	if err := resp.Get(&state); err != nil {
		fmt.Printf("❌ Failed to decode state: %v\n", err)
		return shared.StateSnapshot{}, false
	}
	return state, true
}

func (u *cli) signal(name string, payload any) {
	if err := u.client.SignalWorkflow(context.Background(), u.workflowID, "", name, payload); err != nil {
		fmt.Printf("❌ Signal failed: %v\n", err)
	}
}

func (u *cli) readLine() string {
	line, _ := u.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

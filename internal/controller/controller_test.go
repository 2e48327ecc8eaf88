package controller

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/framp/framp-backend/internal/consts"
	"github.com/framp/framp-backend/internal/model"
	"github.com/framp/framp-backend/internal/payout"
	"github.com/framp/framp-backend/internal/store"
	"github.com/framp/framp-backend/internal/store/offramprequest"
	"github.com/framp/framp-backend/internal/types/environments"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
)

func strPtr(s string) *string { return &s }

func successResponse(reference string) *payout.TransferResponse {
	return &payout.TransferResponse{
		Status:  "success",
		Message: "Transfer Queued Successfully",
		Data:    &payout.TransferData{ID: 1, Reference: reference, Status: "NEW"},
	}
}

var _ = Describe("Controller", func() {
	var (
		requests *mockOffRampStore
		users    *mockUserStore
		waitlist *mockWaitlistStore
		provider *mockPayout
		ctrl     IController
		ctx      context.Context
	)

	BeforeEach(func() {
		requests = &mockOffRampStore{}
		users = &mockUserStore{}
		waitlist = &mockWaitlistStore{}
		provider = &mockPayout{}
		ctx = context.Background()

		cfg := &config.AppConfig{
			OffRamp: config.OffRampConfig{FeePercentage: 1},
			Payout: config.PayoutConfig{
				Currency:    "NGN",
				Narration:   "Framp off-ramp payout",
				CallbackURL: "https://framp.example/callback",
			},
		}
		s := &store.Store{OffRampRequest: requests, User: users, Waitlist: waitlist}
		ctrl = New(nil, s, provider, nil, logger.New(environments.Test), cfg)
	})

	Describe("#CreateOffRampRequest", func() {
		var input CreateOffRampRequestInput

		BeforeEach(func() {
			input = CreateOffRampRequestInput{
				UserID:            strPtr("user-1"),
				Wallet:            "So11111111111111111111111111111111111111112",
				Token:             "SOL",
				Amount:            100,
				BankAccountNumber: "0690000040",
				BankCode:          "044",
				BankName:          "Access Bank",
				Currency:          "NGN",
				SignedTransaction: "base64-signed-tx",
			}
		})

		It("should persist a pending request with the fee applied", func() {
			var stored *model.OffRampRequest
			requests.On("Create", mock.AnythingOfType("*model.OffRampRequest")).
				Run(func(args mock.Arguments) { stored = args.Get(0).(*model.OffRampRequest) }).
				Return(nil)

			result, err := ctrl.CreateOffRampRequest(input)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.FiatAmount).To(Equal(99.0))
			Expect(result.ID).NotTo(BeEmpty())
			Expect(stored.ID).To(Equal(result.ID))
			Expect(stored.Status).To(Equal(model.OffRampStatusPending))
			Expect(stored.FiatDisbursementStatus).To(Equal(model.DisbursementStatusPending))
			Expect(*stored.UserID).To(Equal("user-1"))
		})

		DescribeTable("should reject invalid input without writing",
			func(mutate func(in *CreateOffRampRequestInput)) {
				mutate(&input)

				_, err := ctrl.CreateOffRampRequest(input)

				Expect(errors.Is(err, consts.ErrValidation)).To(BeTrue())
				requests.AssertNotCalled(GinkgoT(), "Create", mock.Anything)
			},
			Entry("zero amount", func(in *CreateOffRampRequestInput) { in.Amount = 0 }),
			Entry("negative amount", func(in *CreateOffRampRequestInput) { in.Amount = -5 }),
			Entry("missing wallet", func(in *CreateOffRampRequestInput) { in.Wallet = "" }),
			Entry("blank bank code", func(in *CreateOffRampRequestInput) { in.BankCode = "   " }),
			Entry("missing signed transaction", func(in *CreateOffRampRequestInput) { in.SignedTransaction = "" }),
			Entry("missing currency", func(in *CreateOffRampRequestInput) { in.Currency = "" }),
		)

		It("should surface persistence errors", func() {
			requests.On("Create", mock.Anything).Return(errors.New("insert failed"))

			_, err := ctrl.CreateOffRampRequest(input)

			Expect(err).To(MatchError("insert failed"))
		})
	})

	Describe("#GetRequest", func() {
		It("should map a missing row to not found", func() {
			requests.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

			_, err := ctrl.GetRequest("missing")

			Expect(err).To(MatchError(consts.ErrNotFound))
		})
	})

	Describe("#ListRequests", func() {
		BeforeEach(func() {
			requests.On("List", mock.Anything).Return([]model.OffRampRequest{
				{ID: "r1", UserID: strPtr("u1"), BankName: "Access Bank", BankAccountNumber: "111", Status: model.OffRampStatusConfirmed, FiatDisbursementStatus: model.DisbursementStatusPending},
				{ID: "r2", UserID: strPtr("u2"), BankName: "GTBank", BankAccountNumber: "222", Status: model.OffRampStatusApproved, FiatDisbursementStatus: model.DisbursementStatusDisbursed, PayoutReference: strPtr("REF-XYZ")},
				{ID: "r3", UserID: strPtr("u1"), BankName: "Zenith", BankAccountNumber: "333", Status: model.OffRampStatusPending, FiatDisbursementStatus: model.DisbursementStatusPending},
				{ID: "r4", BankName: "Kuda", BankAccountNumber: "444", Status: model.OffRampStatusPending, FiatDisbursementStatus: model.DisbursementStatusPending},
			}, nil)
			users.On("ListByIDs", []string{"u1", "u2"}).Return([]model.User{
				{ID: "u1", Name: "Ada Obi", Email: "ada@example.com", Wallet: "wallet-ada"},
			}, nil)
		})

		It("should merge user identity and flag payout eligibility", func() {
			items, err := ctrl.ListRequests(ListRequestsFilter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(4))
			Expect(items[0].UserName).To(Equal("Ada Obi"))
			Expect(items[0].CanTriggerPayout).To(BeTrue())
			Expect(items[1].UserName).To(BeEmpty())
			Expect(items[1].CanTriggerPayout).To(BeFalse())
			Expect(items[2].UserEmail).To(Equal("ada@example.com"))
			Expect(items[2].CanTriggerPayout).To(BeFalse())
		})

		It("should match search case-insensitively across identity, bank and reference", func() {
			byName, _ := ctrl.ListRequests(ListRequestsFilter{Search: "ADA"})
			Expect(byName).To(HaveLen(2))

			byReference, _ := ctrl.ListRequests(ListRequestsFilter{Search: "ref-xyz"})
			Expect(byReference).To(HaveLen(1))
			Expect(byReference[0].ID).To(Equal("r2"))

			byAccount, _ := ctrl.ListRequests(ListRequestsFilter{Search: "444"})
			Expect(byAccount).To(HaveLen(1))
			Expect(byAccount[0].ID).To(Equal("r4"))
		})

		It("should pass the status filter to the store", func() {
			_, err := ctrl.ListRequests(ListRequestsFilter{Status: " pending_all "})

			Expect(err).NotTo(HaveOccurred())
			requests.AssertCalled(GinkgoT(), "List", offramprequest.ListFilter{Status: "pending_all"})
		})
	})

	Describe("#UpdateStatus", func() {
		It("should reject unknown statuses", func() {
			_, err := ctrl.UpdateStatus("r1", "disbursed", nil)

			Expect(errors.Is(err, consts.ErrValidation)).To(BeTrue())
			requests.AssertNotCalled(GinkgoT(), "Update", mock.Anything, mock.Anything)
		})

		It("should set status and note", func() {
			requests.On("GetByID", "r1").Return(&model.OffRampRequest{ID: "r1", Status: model.OffRampStatusPending}, nil)
			requests.On("Update", "r1", map[string]interface{}{
				"status":     model.OffRampStatusConfirmed,
				"admin_note": "checked on explorer",
			}).Return(nil)

			updated, err := ctrl.UpdateStatus("r1", "confirmed", strPtr("checked on explorer"))

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(model.OffRampStatusConfirmed))
			Expect(*updated.AdminNote).To(Equal("checked on explorer"))
		})
	})

	Describe("#ApproveRequest", func() {
		pending := func(status model.OffRampStatus) *model.OffRampRequest {
			return &model.OffRampRequest{
				ID:                     "r1",
				BankCode:               "044",
				BankAccountNumber:      "0690000040",
				FiatAmount:             99,
				Status:                 status,
				FiatDisbursementStatus: model.DisbursementStatusPending,
			}
		}

		It("should send NGN transfer and mark approved and disbursed", func() {
			requests.On("GetByID", "r1").Return(pending(model.OffRampStatusPending), nil)
			provider.On("Transfer", payout.TransferRequest{
				AccountBank:   "044",
				AccountNumber: "0690000040",
				Amount:        99,
				Currency:      "NGN",
				Narration:     "Framp off-ramp payout",
				CallbackURL:   "https://framp.example/callback",
				DebitCurrency: "NGN",
			}).Return(successResponse("ref-1"), nil)

			var fields map[string]interface{}
			requests.On("Update", "r1", mock.Anything).
				Run(func(args mock.Arguments) { fields = args.Get(1).(map[string]interface{}) }).
				Return(nil)

			result, err := ctrl.ApproveRequest(ctx, "r1", "looks good")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Reference).To(Equal("ref-1"))
			Expect(fields["status"]).To(Equal(model.OffRampStatusApproved))
			Expect(fields["fiat_disbursement_status"]).To(Equal(model.DisbursementStatusDisbursed))
			Expect(fields["payout_reference"]).To(Equal("ref-1"))
			Expect(fields["admin_note"]).To(Equal("looks good"))
			Expect(fields).To(HaveKey("disbursed_at"))
		})

		It("should accept processing requests", func() {
			requests.On("GetByID", "r1").Return(pending(model.OffRampStatusProcessing), nil)
			provider.On("Transfer", mock.Anything).Return(successResponse("ref-2"), nil)
			requests.On("Update", "r1", mock.Anything).Return(nil)

			result, err := ctrl.ApproveRequest(ctx, "r1", "")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Request.AdminNote).To(BeNil())
		})

		DescribeTable("should refuse other statuses without calling the provider",
			func(status model.OffRampStatus) {
				requests.On("GetByID", "r1").Return(pending(status), nil)

				_, err := ctrl.ApproveRequest(ctx, "r1", "")

				Expect(errors.Is(err, consts.ErrInvalidState)).To(BeTrue())
				provider.AssertNotCalled(GinkgoT(), "Transfer", mock.Anything)
				requests.AssertNotCalled(GinkgoT(), "Update", mock.Anything, mock.Anything)
			},
			Entry("rejected", model.OffRampStatusRejected),
			Entry("approved", model.OffRampStatusApproved),
			Entry("confirmed", model.OffRampStatusConfirmed),
			Entry("failed", model.OffRampStatusFailed),
		)

		It("should record the error in admin_note when the call fails", func() {
			requests.On("GetByID", "r1").Return(pending(model.OffRampStatusPending), nil)
			provider.On("Transfer", mock.Anything).Return(nil, errors.New("dial tcp: connection refused"))
			requests.On("Update", "r1", map[string]interface{}{"admin_note": "dial tcp: connection refused"}).Return(nil)

			_, err := ctrl.ApproveRequest(ctx, "r1", "")

			Expect(errors.Is(err, consts.ErrPayoutUnavailable)).To(BeTrue())
			requests.AssertExpectations(GinkgoT())
		})

		It("should record the provider message when the provider reports failure", func() {
			requests.On("GetByID", "r1").Return(pending(model.OffRampStatusPending), nil)
			provider.On("Transfer", mock.Anything).Return(&payout.TransferResponse{Status: "error", Message: "Insufficient balance"}, nil)
			requests.On("Update", "r1", map[string]interface{}{"admin_note": "Insufficient balance"}).Return(nil)

			_, err := ctrl.ApproveRequest(ctx, "r1", "")

			Expect(errors.Is(err, consts.ErrPayoutFailed)).To(BeTrue())
			requests.AssertExpectations(GinkgoT())
		})

		It("should report not found", func() {
			requests.On("GetByID", "nope").Return(nil, gorm.ErrRecordNotFound)

			_, err := ctrl.ApproveRequest(ctx, "nope", "")

			Expect(err).To(MatchError(consts.ErrNotFound))
		})
	})

	Describe("#TriggerPayout", func() {
		request := func(disbursement model.DisbursementStatus) *model.OffRampRequest {
			return &model.OffRampRequest{
				ID:                     "r1",
				BankCode:               "058",
				BankAccountNumber:      "0123456789",
				FiatAmount:             49.5,
				Status:                 model.OffRampStatusConfirmed,
				FiatDisbursementStatus: disbursement,
			}
		}

		It("should mark success with reference", func() {
			requests.On("GetByID", "r1").Return(request(model.DisbursementStatusPending), nil)
			provider.On("Transfer", mock.MatchedBy(func(req payout.TransferRequest) bool {
				return req.Currency == "NGN" && req.Amount == 49.5 && req.AccountBank == "058"
			})).Return(successResponse("ref-b"), nil)

			var fields map[string]interface{}
			requests.On("Update", "r1", mock.Anything).
				Run(func(args mock.Arguments) { fields = args.Get(1).(map[string]interface{}) }).
				Return(nil)

			result, err := ctrl.TriggerPayout(ctx, "r1")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Request.FiatDisbursementStatus).To(Equal(model.DisbursementStatusSuccess))
			Expect(fields["fiat_disbursement_status"]).To(Equal(model.DisbursementStatusSuccess))
			Expect(fields["payout_reference"]).To(Equal("ref-b"))
			Expect(fields).NotTo(HaveKey("status"))
		})

		It("should refuse a request already paid with success", func() {
			requests.On("GetByID", "r1").Return(request(model.DisbursementStatusSuccess), nil)

			_, err := ctrl.TriggerPayout(ctx, "r1")

			Expect(err).To(MatchError(consts.ErrAlreadyDisbursed))
			Expect(err.Error()).To(Equal("Already disbursed"))
			provider.AssertNotCalled(GinkgoT(), "Transfer", mock.Anything)
		})

		It("should still pay a request disbursed through approve", func() {
			requests.On("GetByID", "r1").Return(request(model.DisbursementStatusDisbursed), nil)
			provider.On("Transfer", mock.Anything).Return(successResponse("ref-again"), nil)
			requests.On("Update", "r1", mock.Anything).Return(nil)

			_, err := ctrl.TriggerPayout(ctx, "r1")

			Expect(err).NotTo(HaveOccurred())
			provider.AssertNumberOfCalls(GinkgoT(), "Transfer", 1)
		})

		It("should mark failed with a diagnostic on provider failure", func() {
			requests.On("GetByID", "r1").Return(request(model.DisbursementStatusPending), nil)
			provider.On("Transfer", mock.Anything).Return(&payout.TransferResponse{Status: "error", Message: "Invalid account"}, nil)

			var fields map[string]interface{}
			requests.On("Update", "r1", mock.Anything).
				Run(func(args mock.Arguments) { fields = args.Get(1).(map[string]interface{}) }).
				Return(nil)

			_, err := ctrl.TriggerPayout(ctx, "r1")

			Expect(errors.Is(err, consts.ErrPayoutFailed)).To(BeTrue())
			Expect(fields["fiat_disbursement_status"]).To(Equal(model.DisbursementStatusFailed))
			Expect(fields["admin_note"]).To(ContainSubstring("Invalid account"))
		})

		It("should mark failed when the call errors", func() {
			requests.On("GetByID", "r1").Return(request(model.DisbursementStatusFailed), nil)
			provider.On("Transfer", mock.Anything).Return(nil, errors.New("timeout"))
			requests.On("Update", "r1", mock.Anything).Return(nil)

			_, err := ctrl.TriggerPayout(ctx, "r1")

			Expect(errors.Is(err, consts.ErrPayoutUnavailable)).To(BeTrue())
		})

		It("should refuse a second payout once the first succeeded", func() {
			row := request(model.DisbursementStatusPending)
			requests.On("GetByID", "r1").Return(row, nil).Once()
			provider.On("Transfer", mock.Anything).Return(successResponse("ref-once"), nil).Once()
			requests.On("Update", "r1", mock.Anything).Return(nil)

			first, err := ctrl.TriggerPayout(ctx, "r1")
			Expect(err).NotTo(HaveOccurred())

			requests.On("GetByID", "r1").Return(first.Request, nil)
			_, err = ctrl.TriggerPayout(ctx, "r1")

			Expect(err).To(MatchError(consts.ErrAlreadyDisbursed))
			provider.AssertNumberOfCalls(GinkgoT(), "Transfer", 1)
		})
	})

	Describe("#Quote", func() {
		It("should apply the configured fee", func() {
			quote, err := ctrl.Quote("SOL", 200)

			Expect(err).NotTo(HaveOccurred())
			Expect(quote.Fee).To(Equal(2.0))
			Expect(quote.FiatAmount).To(Equal(198.0))
			Expect(quote.Currency).To(Equal("NGN"))
		})

		It("should reject non-positive amounts", func() {
			_, err := ctrl.Quote("SOL", 0)

			Expect(errors.Is(err, consts.ErrValidation)).To(BeTrue())
		})
	})

	Describe("Waitlist", func() {
		It("should reject malformed emails before touching the store", func() {
			_, err := ctrl.JoinWaitlist("not-an-email", "Ada")

			Expect(errors.Is(err, consts.ErrValidation)).To(BeTrue())
			waitlist.AssertNotCalled(GinkgoT(), "GetByEmail", mock.Anything)
		})

		It("should update a waitlist status", func() {
			waitlist.On("GetByID", "w1").Return(&model.WaitlistEntry{ID: "w1", Email: "ada@example.com", Status: model.WaitlistStatusPending}, nil)
			waitlist.On("UpdateStatus", "w1", model.WaitlistStatusApproved).Return(nil)

			entry, err := ctrl.UpdateWaitlistStatus("w1", "approved")

			Expect(err).NotTo(HaveOccurred())
			Expect(entry.Status).To(Equal(model.WaitlistStatusApproved))
		})

		It("should report missing waitlist entries", func() {
			waitlist.On("GetByID", "w9").Return(nil, gorm.ErrRecordNotFound)

			_, err := ctrl.UpdateWaitlistStatus("w9", "rejected")

			Expect(err).To(MatchError(consts.ErrWaitlistNotFound))
		})

		It("should list entries by status", func() {
			waitlist.On("List", "pending").Return([]model.WaitlistEntry{{ID: "w1"}}, nil)

			entries, err := ctrl.ListWaitlist("pending")

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		})
	})
})

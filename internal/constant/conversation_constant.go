package constant

const (
	CommandLapor = "lapor"
	CommandBatal = "batal"
	CommandStart = "start"
	CommandHelp  = "help"

	// Callback payload namespaces.
	SegmentCallbackPrefix    = "SEGMENTASI_"
	DesignatorCallbackPrefix = "DESIGNATOR_"
)

// Pesan ke pengguna (HTML parse mode). Nilai dinamis wajib di-escape sebelum masuk ke %s.
const (
	MsgWelcome = "👋 Selamat datang di <b>Bot Eviden</b>.\n\n" +
		"Perintah yang tersedia:\n" +
		"/lapor - mulai laporan baru\n" +
		"/batal - batalkan laporan yang sedang berjalan\n" +
		"/help - tampilkan bantuan ini"
	MsgUnknownCommand = "Perintah tidak dikenali."

	MsgPromptSegment     = "➡️ <b>TAHAP 1: Pilih Segmentasi Jalur</b>"
	MsgPromptDesignator  = "✅ Segmentasi: <b>%s</b>\n\n➡️ <b>TAHAP 2: Pilih Designator (Jenis Eviden)</b>"
	MsgPromptPhoto       = "✅ Designator: <b>%s</b>\n\n➡️ <b>TAHAP 3: Kirim Foto Eviden.</b>"
	MsgProcessingPhoto   = "Memproses foto, mohon tunggu..."
	MsgPromptDescription = "✅ Foto Eviden tersimpan.\n\n➡️ <b>TAHAP 4: Ketik Keterangan/Deskripsi</b> laporan Anda."
	MsgPromptLocation    = "✅ Keterangan tersimpan.\n\n➡️ <b>TAHAP 5: Kirim Lokasi</b> (Gunakan fitur \"Share Location\" di Telegram)."
	MsgReportSaved       = "🎉 <b>Laporan Berhasil Disimpan!</b>\n\n" +
		"Data evidensi dan lokasi Anda telah direkap dan file tersimpan dengan rapi." +
		"\n\nKetik /lapor untuk membuat laporan baru."
	MsgCancelled       = "🛑 Laporan dibatalkan. Ketik /lapor untuk memulai laporan baru."
	MsgNothingToCancel = "Tidak ada laporan yang sedang berjalan. Ketik /lapor untuk memulai laporan baru."
	MsgResumeHint      = "ℹ️ Anda masih memiliki laporan yang belum selesai."

	MsgNeedLapor       = "Silakan ketik /lapor untuk memulai laporan baru."
	MsgNeedButton      = "Silakan pilih salah satu tombol pada pesan sebelumnya, atau ketik /lapor untuk mengulang."
	MsgNeedPhoto       = "📷 Tahap ini membutuhkan <b>foto eviden</b>. Silakan kirim ulang foto."
	MsgNeedDescription = "✍️ Silakan ketik keterangan/deskripsi laporan dalam bentuk teks."
	MsgNeedLocation    = "📍 Silakan kirim lokasi menggunakan fitur \"Share Location\" di Telegram."

	MsgStaleSelection   = "Pilihan ini sudah tidak berlaku."
	MsgInvalidSelection = "Pilihan tidak dikenali. Silakan pilih ulang."

	MsgSegmentUnavailable    = "⚠️ Error: Data segmentasi tidak ditemukan atau terjadi kesalahan database."
	MsgDesignatorUnavailable = "⚠️ Error: Data designator tidak ditemukan. Silakan pilih segmentasi lagi."
	MsgUploadFailed          = "❌ Terjadi kesalahan saat mengunggah foto. Silakan coba lagi."
	MsgUploadConflict        = "❌ Foto eviden dengan nama yang sama sudah ada. Silakan kirim ulang foto."
	MsgFinalizeFailed        = "❌ Laporan GAGAL disimpan ke database. Mohon kirim ulang lokasi.\n\n<i>%s</i>"
	MsgSessionReadFailed     = "⚠️ Sesi laporan Anda tidak dapat dibaca saat ini. Silakan coba lagi sebentar lagi."
	MsgSessionWriteFailed    = "⚠️ Progres laporan gagal disimpan. Silakan ulangi langkah terakhir."
	MsgSessionConflict       = "⚠️ Sesi laporan Anda baru saja berubah oleh pesan lain. Silakan ulangi langkah terakhir."
)

// WebhookStatus is the liveness payload for non-POST requests on the webhook path.
const WebhookStatus = "Bot running, waiting for webhook..."
